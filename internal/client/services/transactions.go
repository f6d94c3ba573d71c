package services

import (
	"context"

	"github.com/dmitrijs2005/wealthwise/internal/client/models"
	"github.com/dmitrijs2005/wealthwise/internal/logging"
)

const pathTransactions = "transactions/"

type TransactionService interface {
	List(ctx context.Context, f models.TransactionFilter) ([]models.Transaction, error)
	Create(ctx context.Context, in models.TransactionInput) (*models.TransactionResponse, error)
	Update(ctx context.Context, id int64, in models.TransactionInput) (*models.Transaction, error)
	Delete(ctx context.Context, id int64) (*models.MessageResponse, error)
}

type transactionService struct {
	base
}

func NewTransactionService(r Requester, log logging.Logger) TransactionService {
	return &transactionService{base: newBase(r, log)}
}

func (s *transactionService) List(ctx context.Context, f models.TransactionFilter) ([]models.Transaction, error) {
	var out []models.Transaction
	if err := s.r.Get(ctx, pathTransactions, f.Query(), &out); err != nil {
		return nil, s.fail(ctx, "list transactions", err)
	}
	return out, nil
}

func (s *transactionService) Create(ctx context.Context, in models.TransactionInput) (*models.TransactionResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var resp models.TransactionResponse
	if err := s.r.Post(ctx, pathTransactions, in, &resp); err != nil {
		return nil, s.fail(ctx, "create transaction", err)
	}
	return &resp, nil
}

func (s *transactionService) Update(ctx context.Context, id int64, in models.TransactionInput) (*models.Transaction, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var tx models.Transaction
	if err := s.r.Patch(ctx, itemPath(pathTransactions, id), in, &tx); err != nil {
		return nil, s.fail(ctx, "update transaction", err)
	}
	return &tx, nil
}

func (s *transactionService) Delete(ctx context.Context, id int64) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	if err := s.r.Delete(ctx, itemPath(pathTransactions, id), &resp); err != nil {
		return nil, s.fail(ctx, "delete transaction", err)
	}
	return &resp, nil
}
