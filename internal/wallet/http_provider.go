package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"time"
)

// HTTPProvider はウォレットブリッジ（署名はユーザー端末側）へのHTTPクライアント。
// Provider契約の実装。
type HTTPProvider struct {
	baseURL string
	hc      *http.Client
}

func NewHTTPProvider(baseURL string) *HTTPProvider {
	return &HTTPProvider{
		baseURL: baseURL,
		//確認待ちはctxのdeadlineで切るのでクライアント側のタイムアウトは持たない
		hc: &http.Client{},
	}
}

type accountsResponse struct {
	Accounts []string `json:"accounts"`
}

func (p *HTTPProvider) RequestAccounts(ctx context.Context) ([]string, error) {
	var out accountsResponse
	if err := p.post(ctx, "/accounts", nil, &out); err != nil {
		return nil, err
	}
	return out.Accounts, nil
}

type signRequest struct {
	Message string `json:"message"`
	Address string `json:"address"`
}

type signResponse struct {
	Signature string `json:"signature"`
}

func (p *HTTPProvider) PersonalSign(ctx context.Context, message string, address string) (string, error) {
	var out signResponse
	if err := p.post(ctx, "/sign", signRequest{Message: message, Address: address}, &out); err != nil {
		return "", err
	}
	return out.Signature, nil
}

type transferRequest struct {
	From      string `json:"from"`
	To        string `json:"to"`
	AmountWei string `json:"amount_wei"`
}

type transferResponse struct {
	TxHash string `json:"tx_hash"`
}

func (p *HTTPProvider) SendTransfer(ctx context.Context, from string, to string, amountWei *big.Int) (string, error) {
	var out transferResponse
	err := p.post(ctx, "/transfer", transferRequest{
		From:      from,
		To:        to,
		AmountWei: amountWei.String(),
	}, &out)
	if err != nil {
		return "", err
	}
	return out.TxHash, nil
}

type confirmRequest struct {
	TxHash string `json:"tx_hash"`
}

type confirmResponse struct {
	Confirmed bool `json:"confirmed"`
}

// AwaitConfirmation はブリッジをポーリングする。上限はctxのdeadline。
func (p *HTTPProvider) AwaitConfirmation(ctx context.Context, txHash string) error {
	ticker := time.NewTicker(3 * time.Second)
	defer ticker.Stop()

	for {
		var out confirmResponse
		if err := p.post(ctx, "/confirmation", confirmRequest{TxHash: txHash}, &out); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		if out.Confirmed {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (p *HTTPProvider) post(ctx context.Context, path string, in interface{}, out interface{}) error {
	var body bytes.Buffer
	if in != nil {
		if err := json.NewEncoder(&body).Encode(in); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := p.hc.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	//403はユーザーによる拒否
	if res.StatusCode == http.StatusForbidden {
		return ErrUserRejected
	}
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("wallet bridge returned %d", res.StatusCode)
	}

	return json.NewDecoder(res.Body).Decode(out)
}
