package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/oasisfintech/oasis-backend/internal/domain"
	"github.com/oasisfintech/oasis-backend/internal/usecase/ledger"
	"github.com/oasisfintech/oasis-backend/internal/usecase/transfer"
	"github.com/oasisfintech/oasis-backend/internal/usecase/workflow"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC().Format(time.RFC3339)})
}

func (s *Server) handleCreateSession(c *gin.Context) {
	var req struct {
		MemberID string `json:"member_id" binding:"required"`
		Role     string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if req.Role != "" {
		s.policy.AssignRole(req.MemberID, req.Role)
	}

	sess, err := s.sessions.Create(c.Request.Context(), req.MemberID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sess)
}

func (s *Server) handleDeleteSession(c *gin.Context) {
	if err := s.sessions.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleCreateAccount(c *gin.Context) {
	var req struct {
		MemberID       string `json:"member_id" binding:"required"`
		Type           string `json:"account_type" binding:"required"`
		Label          string `json:"label"`
		Currency       string `json:"currency"`
		OpeningBalance string `json:"opening_balance"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	opening := decimal.Zero
	if req.OpeningBalance != "" {
		parsed, err := decimal.NewFromString(req.OpeningBalance)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid opening_balance"})
			return
		}
		opening = parsed
	}

	account, err := s.ledger.CreateAccount(c.Request.Context(), ledger.CreateAccountInput{
		MemberID:       req.MemberID,
		Type:           req.Type,
		Label:          req.Label,
		Currency:       req.Currency,
		OpeningBalance: opening,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, accountResponse(account))
}

func (s *Server) handleGetAccount(c *gin.Context) {
	account, err := s.ledger.GetAccount(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, accountResponse(account))
}

func (s *Server) handlePostEntry(c *gin.Context) {
	var req struct {
		DebitAccountID  string `json:"debit_account_id" binding:"required"`
		CreditAccountID string `json:"credit_account_id" binding:"required"`
		Amount          string `json:"amount" binding:"required"`
		Memo            string `json:"memo"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount"})
		return
	}

	// Screen before posting; a flagged transaction never reaches the ledger.
	alert, err := s.fraud.Evaluate(c.Request.Context(), domain.Transaction{
		MemberID:        c.GetString(ctxMemberID),
		DebitAccountID:  req.DebitAccountID,
		CreditAccountID: req.CreditAccountID,
		Amount:          amount,
		Memo:            req.Memo,
		CreatedAt:       time.Now(),
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	if alert != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": domain.ErrFraudBlocked.Error(),
			"rule":  alert.RuleTriggered,
		})
		return
	}

	entry, err := s.ledger.PostEntry(c.Request.Context(), ledger.PostEntryInput{
		DebitAccountID:  req.DebitAccountID,
		CreditAccountID: req.CreditAccountID,
		Amount:          amount,
		Memo:            req.Memo,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entryResponse(entry))
}

func (s *Server) handleGetEntries(c *gin.Context) {
	entries, err := s.ledger.Entries(c.Request.Context(), c.Param("accountId"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	out := make([]gin.H, 0, len(entries))
	for _, e := range entries {
		out = append(out, entryResponse(e))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleInitiateAch(c *gin.Context) {
	var req struct {
		FromAccountID   string `json:"from_account_id" binding:"required"`
		SettlementID    string `json:"settlement_account_id" binding:"required"`
		ToBank          string `json:"to_bank" binding:"required"`
		ToAccountNumber string `json:"to_account_number" binding:"required"`
		Amount          string `json:"amount" binding:"required"`
		TransferType    string `json:"transfer_type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount"})
		return
	}

	achTransfer, stepLog, err := s.transfer.Initiate(c.Request.Context(), transfer.InitiateInput{
		MemberID:        c.GetString(ctxMemberID),
		FromAccountID:   req.FromAccountID,
		SettlementID:    req.SettlementID,
		ToBank:          req.ToBank,
		ToAccountNumber: req.ToAccountNumber,
		Amount:          amount,
		TransferType:    req.TransferType,
	})
	if err != nil {
		var stepErr *workflow.StepError
		if errors.As(err, &stepErr) {
			status := statusForError(err)
			c.JSON(status, gin.H{
				"error": stepErr.Error(),
				"step":  stepErr.Step,
				"log":   stepLogResponse(stepLog),
			})
			return
		}
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":                achTransfer.ID,
		"from_account_id":   achTransfer.FromAccountID,
		"to_bank":           achTransfer.ToBank,
		"to_account_number": achTransfer.ToAccountNumber,
		"amount":            achTransfer.Amount.String(),
		"transfer_type":     achTransfer.TransferType,
		"status":            achTransfer.Status,
		"ledger_entry_id":   achTransfer.LedgerEntryID,
		"log":               stepLogResponse(stepLog),
	})
}

func (s *Server) handleReconcile(c *gin.Context) {
	var req struct {
		AccountID  string `json:"account_id"`
		Statements []struct {
			Reference string    `json:"reference"`
			Amount    string    `json:"amount" binding:"required"`
			Timestamp time.Time `json:"timestamp" binding:"required"`
		} `json:"statements" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	external := make([]domain.StatementRecord, 0, len(req.Statements))
	for _, stmt := range req.Statements {
		amount, err := decimal.NewFromString(stmt.Amount)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid statement amount"})
			return
		}
		external = append(external, domain.StatementRecord{
			Reference: stmt.Reference,
			Amount:    amount,
			Timestamp: stmt.Timestamp,
		})
	}

	internal, err := s.ledger.Entries(c.Request.Context(), req.AccountID)
	if err != nil {
		s.respondError(c, err)
		return
	}

	result := s.reconcile.Reconcile(internal, external)

	matched := make([]gin.H, 0, len(result.Matched))
	for _, pair := range result.Matched {
		matched = append(matched, gin.H{
			"entry_id":  pair.Internal.ID,
			"reference": pair.External.Reference,
			"amount":    pair.External.Amount.String(),
		})
	}
	unmatched := make([]gin.H, 0, len(result.Unmatched))
	for _, rec := range result.Unmatched {
		unmatched = append(unmatched, gin.H{
			"reference": rec.Reference,
			"amount":    rec.Amount.String(),
			"timestamp": rec.Timestamp.UTC().Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, gin.H{"matched": matched, "unmatched": unmatched})
}

func (s *Server) handleListAlerts(c *gin.Context) {
	alerts, err := s.fraud.Alerts(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}

	out := make([]gin.H, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, gin.H{
			"id":             a.ID,
			"rule_triggered": a.RuleTriggered,
			"transaction_id": a.Transaction.ID,
			"amount":         a.Transaction.Amount.String(),
			"created_at":     a.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleMonthlyReport(c *gin.Context) {
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month"})
		return
	}
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return
	}

	summary, err := s.report.Monthly(c.Request.Context(), month, year)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"month":        summary.Month,
		"year":         summary.Year,
		"count":        summary.Count,
		"total_amount": summary.TotalAmount.String(),
	})
}

func accountResponse(account *domain.Account) gin.H {
	return gin.H{
		"id":           account.ID,
		"member_id":    account.MemberID,
		"account_type": account.Type,
		"label":        account.Label,
		"currency":     account.Currency,
		"balance":      account.Balance.String(),
		"status":       account.Status,
		"created_at":   account.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func entryResponse(entry *domain.LedgerEntry) gin.H {
	return gin.H{
		"id":                entry.ID,
		"debit_account_id":  entry.DebitAccountID,
		"credit_account_id": entry.CreditAccountID,
		"amount":            entry.Amount.String(),
		"memo":              entry.Memo,
		"status":            entry.Status,
		"created_at":        entry.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func stepLogResponse(log []workflow.StepResult) []gin.H {
	out := make([]gin.H, 0, len(log))
	for _, result := range log {
		item := gin.H{"step": result.Step, "status": result.Status}
		if result.Err != "" {
			item["error"] = result.Err
		}
		out = append(out, item)
	}
	return out
}
