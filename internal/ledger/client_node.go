package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"attestor/pkg/platform/sentinel"
)

// NodeClient talks to a registry node over HTTP. Mutations are two-phase:
// the node accepts a transaction into its pending queue and returns a ref,
// then the client polls the receipt until the node reports finality. Success
// is only ever reported on a confirmed receipt; the caller's context deadline
// bounds the wait.
type NodeClient struct {
	baseURL      string
	issuer       string
	pollInterval time.Duration
	http         *http.Client
}

// NewNodeClient builds a client for the node at baseURL. issuer is the
// account the node signs transactions with, echoed into receipts.
func NewNodeClient(baseURL, issuer string, pollInterval time.Duration) *NodeClient {
	return &NodeClient{
		baseURL:      baseURL,
		issuer:       issuer,
		pollInterval: pollInterval,
		// Per-request bound; overall waiting is governed by ctx.
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

type txRequest struct {
	Type            string `json:"type"`
	RecipientName   string `json:"recipientName,omitempty"`
	EventName       string `json:"eventName,omitempty"`
	IssueDate       string `json:"issueDate,omitempty"`
	CertificateHash string `json:"certificateHash,omitempty"`
	From            string `json:"from"`
}

type txSubmission struct {
	TransactionRef string `json:"transactionRef"`
}

type txReceipt struct {
	Status          string `json:"status"` // pending, confirmed, failed
	BlockNumber     uint64 `json:"blockNumber"`
	CertificateHash string `json:"certificateHash"`
	Issuer          string `json:"issuer"`
	AlreadyRevoked  bool   `json:"alreadyRevoked"`
	Error           string `json:"error"`
}

type certificateResponse struct {
	RecipientName string `json:"recipientName"`
	EventName     string `json:"eventName"`
	IssueDate     string `json:"issueDate"`
	Issuer        string `json:"issuer"`
	IsValid       bool   `json:"isValid"`
}

func (c *NodeClient) Issue(ctx context.Context, recipientName, eventName, issueDate string) (IssueReceipt, error) {
	ref, err := c.submit(ctx, txRequest{
		Type:          "issue_certificate",
		RecipientName: recipientName,
		EventName:     eventName,
		IssueDate:     issueDate,
		From:          c.issuer,
	})
	if err != nil {
		return IssueReceipt{}, err
	}

	receipt, err := c.awaitConfirmation(ctx, ref)
	if err != nil {
		return IssueReceipt{}, err
	}
	return IssueReceipt{
		Identifier:     receipt.CertificateHash,
		Issuer:         receipt.Issuer,
		TransactionRef: ref,
		BlockNumber:    receipt.BlockNumber,
	}, nil
}

func (c *NodeClient) Verify(ctx context.Context, identifier string) (Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/certificates/"+identifier, nil)
	if err != nil {
		return Record{}, fmt.Errorf("build verify request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return Record{}, fmt.Errorf("verify %s: %w", identifier, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var body certificateResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return Record{}, fmt.Errorf("decode certificate: %w", err)
		}
		return Record{
			RecipientName: body.RecipientName,
			EventName:     body.EventName,
			IssueDate:     body.IssueDate,
			Issuer:        body.Issuer,
			IsValid:       body.IsValid,
		}, nil
	case http.StatusNotFound:
		// Unknown identifier is a valid negative answer, not an error.
		return Record{IsValid: false}, nil
	default:
		return Record{}, fmt.Errorf("verify %s: node returned %s", identifier, resp.Status)
	}
}

func (c *NodeClient) Revoke(ctx context.Context, identifier string) (RevokeReceipt, error) {
	ref, err := c.submit(ctx, txRequest{
		Type:            "revoke_certificate",
		CertificateHash: identifier,
		From:            c.issuer,
	})
	if err != nil {
		return RevokeReceipt{}, err
	}

	receipt, err := c.awaitConfirmation(ctx, ref)
	if err != nil {
		return RevokeReceipt{}, err
	}
	return RevokeReceipt{
		TransactionRef: ref,
		AlreadyRevoked: receipt.AlreadyRevoked,
	}, nil
}

// submit posts one transaction and returns its ref. Submission alone is
// never surfaced as success to anything above this client.
func (c *NodeClient) submit(ctx context.Context, tx txRequest) (string, error) {
	payload, err := json.Marshal(tx)
	if err != nil {
		return "", fmt.Errorf("encode transaction: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transactions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build transaction request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("submit %s: %w", tx.Type, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted && resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("submit %s: node returned %s: %s", tx.Type, resp.Status, body)
	}
	var sub txSubmission
	if err := json.NewDecoder(resp.Body).Decode(&sub); err != nil {
		return "", fmt.Errorf("decode submission: %w", err)
	}
	if sub.TransactionRef == "" {
		return "", fmt.Errorf("submit %s: node returned no transaction ref", tx.Type)
	}
	return sub.TransactionRef, nil
}

// awaitConfirmation polls the receipt until the node reports finality or the
// context deadline expires. Once submitted a transaction cannot be aborted
// from this side, so cancellation here abandons the wait, not the tx.
func (c *NodeClient) awaitConfirmation(ctx context.Context, ref string) (txReceipt, error) {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		receipt, err := c.receipt(ctx, ref)
		if err != nil {
			return txReceipt{}, err
		}
		switch receipt.Status {
		case "confirmed":
			return receipt, nil
		case "failed":
			if receipt.Error == "certificate not found" {
				return txReceipt{}, fmt.Errorf("transaction %s: %w", ref, sentinel.ErrNotFound)
			}
			return txReceipt{}, fmt.Errorf("transaction %s failed: %s", ref, receipt.Error)
		}

		select {
		case <-ctx.Done():
			return txReceipt{}, fmt.Errorf("awaiting confirmation of %s: %w", ref, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (c *NodeClient) receipt(ctx context.Context, ref string) (txReceipt, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/transactions/"+ref, nil)
	if err != nil {
		return txReceipt{}, fmt.Errorf("build receipt request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return txReceipt{}, fmt.Errorf("receipt %s: %w", ref, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return txReceipt{}, fmt.Errorf("receipt %s: node returned %s", ref, resp.Status)
	}
	var receipt txReceipt
	if err := json.NewDecoder(resp.Body).Decode(&receipt); err != nil {
		return txReceipt{}, fmt.Errorf("decode receipt: %w", err)
	}
	return receipt, nil
}
