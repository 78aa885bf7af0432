package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Shyam4142/Village-Vault/internal/cqrs"
	"github.com/Shyam4142/Village-Vault/internal/models"
)

// ---- mock implementations ----

type mockTransferCommander struct {
	executeFn func(context.Context, cqrs.TransferCommand) (*models.Transaction, error)
}

func (m *mockTransferCommander) ExecuteTransfer(ctx context.Context, cmd cqrs.TransferCommand) (*models.Transaction, error) {
	if m.executeFn != nil {
		return m.executeFn(ctx, cmd)
	}
	return nil, fmt.Errorf("not configured")
}

type mockTransactionQuerier struct {
	getFn  func(cqrs.GetTransactionQuery) (*models.TransactionView, error)
	listFn func(cqrs.ListTransactionsQuery) ([]models.TransactionView, error)
}

func (m *mockTransactionQuerier) GetTransaction(q cqrs.GetTransactionQuery) (*models.TransactionView, error) {
	if m.getFn != nil {
		return m.getFn(q)
	}
	return nil, fmt.Errorf("not configured")
}
func (m *mockTransactionQuerier) ListTransactions(q cqrs.ListTransactionsQuery) ([]models.TransactionView, error) {
	if m.listFn != nil {
		return m.listFn(q)
	}
	return nil, fmt.Errorf("not configured")
}

// ---- helpers ----

func fakeAuth(userID, email string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userId", userID)
		c.Set("email", email)
		c.Next()
	}
}

func newTransferTestRouter(cmds TransferCommander, qrys TransactionQuerier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(fakeAuth("usr-001", "alice@example.com"))
	h := NewTransferHandler(cmds, qrys)
	v1 := r.Group("/v1")
	v1.POST("/transfers", h.CreateTransfer)
	v1.GET("/transactions", h.ListTransactions)
	v1.GET("/transactions/:transactionId", h.GetTransaction)
	return r
}

func doRequest(router *gin.Engine, method, url string, body interface{}) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, url, nil)
	if body != nil {
		b, _ := json.Marshal(body)
		req, _ = http.NewRequest(method, url, strings.NewReader(string(b)))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// ---- test data ----

var testTransaction = &models.Transaction{
	ID: "tan-001", Amount: 30.00, Type: models.TransferInternal,
	SenderID: "usr-001", ReceiverID: "usr-001",
	SenderEmail: "alice@example.com", ReceiverEmail: "alice@example.com",
	SenderAccount: models.AccountChecking, ReceiverAccount: models.AccountSavings,
	CreatedAt: time.Now(),
}

var testView = &models.TransactionView{
	ID: "tan-001", Amount: 30.00, SignedAmount: -30.00,
	Direction: models.DirectionSent, Type: models.TransferInternal,
	SenderEmail: "alice@example.com", ReceiverEmail: "alice@example.com",
	SenderAccount: models.AccountChecking, ReceiverAccount: models.AccountSavings,
	CreatedAt: time.Now(),
}

func internalTransferBody() map[string]interface{} {
	return map[string]interface{}{
		"amount": 30.0, "description": "rent share",
		"fromAccount": "checking", "toAccount": "savings",
	}
}

func externalTransferBody() map[string]interface{} {
	return map[string]interface{}{
		"amount": 50.0, "fromAccount": "checking", "toAccount": "checking",
		"external": true, "recipientEmail": "bob@example.com",
	}
}

// ---- tests ----

func TestCreateTransfer(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		executeFn      func(context.Context, cqrs.TransferCommand) (*models.Transaction, error)
		expectedStatus int
	}{
		{
			name: "success - internal transfer between own buckets",
			body: internalTransferBody(),
			executeFn: func(ctx context.Context, cmd cqrs.TransferCommand) (*models.Transaction, error) {
				return testTransaction, nil
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "success - external transfer to another holder",
			body: externalTransferBody(),
			executeFn: func(ctx context.Context, cmd cqrs.TransferCommand) (*models.Transaction, error) {
				return testTransaction, nil
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "bad request - same bucket internal transfer",
			body: map[string]interface{}{"amount": 30.0, "fromAccount": "checking", "toAccount": "checking"},
			executeFn: func(ctx context.Context, cmd cqrs.TransferCommand) (*models.Transaction, error) {
				return nil, models.ErrSameAccountTransfer
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "not found - unknown external recipient",
			body: externalTransferBody(),
			executeFn: func(ctx context.Context, cmd cqrs.TransferCommand) (*models.Transaction, error) {
				return nil, models.ErrRecipientNotFound
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "unprocessable entity - insufficient funds",
			body: internalTransferBody(),
			executeFn: func(ctx context.Context, cmd cqrs.TransferCommand) (*models.Transaction, error) {
				return nil, models.ErrInsufficientFunds
			},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "gateway timeout - ambiguous commit outcome",
			body: internalTransferBody(),
			executeFn: func(ctx context.Context, cmd cqrs.TransferCommand) (*models.Transaction, error) {
				return nil, models.ErrCommitTimeout
			},
			expectedStatus: http.StatusGatewayTimeout,
		},
		{
			name: "internal error - commit failed",
			body: internalTransferBody(),
			executeFn: func(ctx context.Context, cmd cqrs.TransferCommand) (*models.Transaction, error) {
				return nil, models.ErrCommitFailed
			},
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "bad request - missing required fields",
			body:           map[string]interface{}{},
			executeFn:      nil,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad request - amount is zero",
			body:           map[string]interface{}{"amount": 0, "fromAccount": "checking", "toAccount": "savings"},
			executeFn:      nil,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "bad request - description over 50 characters",
			body: map[string]interface{}{
				"amount": 30.0, "description": strings.Repeat("x", 51),
				"fromAccount": "checking", "toAccount": "savings",
			},
			executeFn:      nil,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "bad request - external transfer without recipient email",
			body: map[string]interface{}{
				"amount": 30.0, "fromAccount": "checking", "toAccount": "checking", "external": true,
			},
			executeFn:      nil,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "bad request - unknown account bucket",
			body: map[string]interface{}{"amount": 30.0, "fromAccount": "brokerage", "toAccount": "savings"},
			executeFn:      nil,
			expectedStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmds := &mockTransferCommander{executeFn: tt.executeFn}
			router := newTransferTestRouter(cmds, &mockTransactionQuerier{})
			w := doRequest(router, http.MethodPost, "/v1/transfers", tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected %d got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestCreateTransferUsesTokenIdentity(t *testing.T) {
	var captured cqrs.TransferCommand
	cmds := &mockTransferCommander{
		executeFn: func(ctx context.Context, cmd cqrs.TransferCommand) (*models.Transaction, error) {
			captured = cmd
			return testTransaction, nil
		},
	}
	router := newTransferTestRouter(cmds, &mockTransactionQuerier{})

	w := doRequest(router, http.MethodPost, "/v1/transfers", internalTransferBody())
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d; body: %s", w.Code, w.Body.String())
	}
	if captured.CallerID != "usr-001" || captured.CallerEmail != "alice@example.com" {
		t.Errorf("caller identity must come from the token, got %s/%s", captured.CallerID, captured.CallerEmail)
	}
}

func TestListTransactions(t *testing.T) {
	tests := []struct {
		name           string
		listFn         func(cqrs.ListTransactionsQuery) ([]models.TransactionView, error)
		expectedStatus int
	}{
		{
			name: "success - history newest first",
			listFn: func(q cqrs.ListTransactionsQuery) ([]models.TransactionView, error) {
				return []models.TransactionView{*testView}, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "success - empty history",
			listFn: func(q cqrs.ListTransactionsQuery) ([]models.TransactionView, error) {
				return nil, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "internal error - store unavailable",
			listFn: func(q cqrs.ListTransactionsQuery) ([]models.TransactionView, error) {
				return nil, fmt.Errorf("store unavailable")
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTransferTestRouter(&mockTransferCommander{}, &mockTransactionQuerier{listFn: tt.listFn})
			w := doRequest(router, http.MethodGet, "/v1/transactions", nil)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected %d got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestGetTransaction(t *testing.T) {
	tests := []struct {
		name           string
		transactionID  string
		getFn          func(cqrs.GetTransactionQuery) (*models.TransactionView, error)
		expectedStatus int
	}{
		{
			name:          "success - fetch own transaction",
			transactionID: "tan-001",
			getFn: func(q cqrs.GetTransactionQuery) (*models.TransactionView, error) {
				return testView, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:          "not found - transaction does not exist",
			transactionID: "tan-999",
			getFn: func(q cqrs.GetTransactionQuery) (*models.TransactionView, error) {
				return nil, models.ErrTransactionNotFound
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:          "not found - transaction belongs to other parties",
			transactionID: "tan-other",
			getFn: func(q cqrs.GetTransactionQuery) (*models.TransactionView, error) {
				return nil, models.ErrTransactionNotFound
			},
			expectedStatus: http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTransferTestRouter(&mockTransferCommander{}, &mockTransactionQuerier{getFn: tt.getFn})
			w := doRequest(router, http.MethodGet, "/v1/transactions/"+tt.transactionID, nil)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected %d got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}
