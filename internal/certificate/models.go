package certificate

import "attestor/internal/oracle"

// IssueRequest carries the immutable content of the certificate to mint.
// All fields are required; IssueDate must be a syntactically valid date.
type IssueRequest struct {
	RecipientName string `json:"recipientName"`
	EventName     string `json:"eventName"`
	IssueDate     string `json:"issueDate"`
}

// IssueResult is returned after the issuance transaction confirms.
type IssueResult struct {
	Identifier     string            `json:"certificateHash"`
	Issuer         string            `json:"issuer"`
	TransactionRef string            `json:"transactionHash"`
	BlockNumber    uint64            `json:"blockNumber"`
	Validation     oracle.Validation `json:"validation"`
}

// VerifyResult combines the ledger verdict with optional oracle enrichment.
// Valid comes from the ledger alone; OracleValidation is supplementary
// context and is nil whenever the oracle could not answer.
type VerifyResult struct {
	Valid            bool               `json:"isValid"`
	RecipientName    string             `json:"recipientName,omitempty"`
	EventName        string             `json:"eventName,omitempty"`
	IssueDate        string             `json:"issueDate,omitempty"`
	Issuer           string             `json:"issuer,omitempty"`
	OracleValidation *oracle.Validation `json:"oracleValidation,omitempty"`
}

// RevokeResult is returned after the revocation transaction confirms.
// AlreadyRevoked marks the documented no-op case: the certificate was
// revoked before this call and no new transaction was submitted.
type RevokeResult struct {
	TransactionRef string `json:"transactionHash"`
	AlreadyRevoked bool   `json:"alreadyRevoked"`
}
