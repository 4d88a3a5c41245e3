package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/budgettracker/internal/common"
	"github.com/dmitrijs2005/budgettracker/internal/server/aggregate"
	"github.com/dmitrijs2005/budgettracker/internal/server/models"
	"github.com/dmitrijs2005/budgettracker/internal/timex"
)

// transactionRequest accepts amount as a JSON number or a numeric string.
type transactionRequest struct {
	ItemName string          `json:"item_name"`
	Amount   json.RawMessage `json:"amount"`
	Category string          `json:"category"`
	Date     string          `json:"date"`
}

func (req *transactionRequest) input() (models.TransactionInput, error) {
	raw := bytes.Trim(bytes.TrimSpace(req.Amount), `"`)
	if len(raw) == 0 {
		return models.TransactionInput{}, fmt.Errorf("%w: amount is required", common.ErrInvalidAmount)
	}
	amount, err := aggregate.ParseAmount(string(raw))
	if err != nil {
		return models.TransactionInput{}, err
	}

	date, err := timex.NormalizeDate(req.Date)
	if err != nil {
		return models.TransactionInput{}, fmt.Errorf("%w: %q", err, req.Date)
	}

	return models.TransactionInput{
		ItemName: req.ItemName,
		Amount:   amount,
		Category: req.Category,
		Date:     date,
	}, nil
}

func decodeTransaction(w http.ResponseWriter, r *http.Request) (models.TransactionInput, error) {
	var req transactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return models.TransactionInput{}, err
	}
	return req.input()
}

type listResponse struct {
	Transactions []*models.Transaction `json:"transactions"`
	Count        int                   `json:"count"`
}

// listTransactions handles GET /api/transactions[?start=&end=]
func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request, p models.Principal) {
	q := r.URL.Query()
	start, end := q.Get("start"), q.Get("end")

	var (
		items []*models.Transaction
		err   error
	)
	switch {
	case start == "" && end == "":
		items, err = s.deps.Transactions.List(r.Context(), p)
	case start == "" || end == "":
		err = fmt.Errorf("%w: start and end must be given together", common.ErrorValidation)
	default:
		if start, err = timex.NormalizeDate(start); err != nil {
			break
		}
		if end, err = timex.NormalizeDate(end); err != nil {
			break
		}
		items, err = s.deps.Transactions.ListInRange(r.Context(), p, start, end)
	}
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	if items == nil {
		items = []*models.Transaction{}
	}
	writeJSON(w, http.StatusOK, listResponse{Transactions: items, Count: len(items)})
}

// createTransaction handles POST /api/transactions
func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request, p models.Principal) {
	in, err := decodeTransaction(w, r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	id, err := s.deps.Transactions.Create(r.Context(), p, in)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/transactions/"+id)
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// getTransaction handles GET /api/transactions/{id}
func (s *Server) getTransaction(w http.ResponseWriter, r *http.Request, p models.Principal) {
	item, err := s.deps.Transactions.Get(r.Context(), p, r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// updateTransaction handles PUT /api/transactions/{id}
func (s *Server) updateTransaction(w http.ResponseWriter, r *http.Request, p models.Principal) {
	in, err := decodeTransaction(w, r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	id := r.PathValue("id")
	if err := s.deps.Transactions.Update(r.Context(), p, id, in); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	item, err := s.deps.Transactions.Get(r.Context(), p, id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// deleteTransaction handles DELETE /api/transactions/{id}
func (s *Server) deleteTransaction(w http.ResponseWriter, r *http.Request, p models.Principal) {
	if err := s.deps.Transactions.Delete(r.Context(), p, r.PathValue("id")); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
