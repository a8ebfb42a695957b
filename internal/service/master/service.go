package master

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/overtime-backend-go/internal/domain/master/branch"
	"github.com/cmlabs-hris/overtime-backend-go/internal/domain/overtime"
	"github.com/cmlabs-hris/overtime-backend-go/internal/pkg/validator"
	"github.com/jackc/pgx/v5/pgconn"
)

type MasterService interface {
	// Branch operations
	CreateBranch(ctx context.Context, req branch.CreateBranchRequest) (branch.BranchResponse, error)
	GetBranch(ctx context.Context, id string) (branch.BranchResponse, error)
	ListBranches(ctx context.Context, filter branch.ListBranchesFilter) ([]branch.BranchResponse, error)
	ResolvePolicy(ctx context.Context, req branch.ResolvePolicyRequest) (branch.PolicyPreviewResponse, error)
	UpdateBranch(ctx context.Context, req branch.UpdateBranchRequest) error
	DeleteBranch(ctx context.Context, id string) error
}

type masterServiceImpl struct {
	branchRepo branch.BranchRepository
	resolver   *overtime.BranchResolver
}

func NewMasterService(branchRepo branch.BranchRepository, resolver *overtime.BranchResolver) MasterService {
	return &masterServiceImpl{
		branchRepo: branchRepo,
		resolver:   resolver,
	}
}

// ==================== BRANCH OPERATIONS ====================

func (s *masterServiceImpl) CreateBranch(ctx context.Context, req branch.CreateBranchRequest) (branch.BranchResponse, error) {
	// Validate request
	if err := req.Validate(); err != nil {
		return branch.BranchResponse{}, err
	}

	entity := branch.Branch{
		Name:  strings.TrimSpace(req.Name),
		City:  strings.TrimSpace(req.City),
		State: strings.ToUpper(strings.TrimSpace(req.State)),
	}

	created, err := s.branchRepo.Create(ctx, entity)
	if err != nil {
		if isPgError(err, "23505") { // unique_violation
			return branch.BranchResponse{}, branch.ErrBranchNameExists
		}
		return branch.BranchResponse{}, fmt.Errorf("failed to create branch: %w", err)
	}

	return s.toResponse(created), nil
}

func (s *masterServiceImpl) GetBranch(ctx context.Context, id string) (branch.BranchResponse, error) {
	if !validator.IsValidUUID(id) {
		return branch.BranchResponse{}, branch.ErrBranchNotFound
	}

	entity, err := s.branchRepo.GetByID(ctx, id)
	if err != nil {
		return branch.BranchResponse{}, err
	}

	return s.toResponse(entity), nil
}

func (s *masterServiceImpl) ListBranches(ctx context.Context, filter branch.ListBranchesFilter) ([]branch.BranchResponse, error) {
	var policyKey overtime.BranchKey
	if key := strings.TrimSpace(filter.PolicyKey); key != "" {
		parsed, ok := overtime.ParseBranchKey(key)
		if !ok {
			return nil, fmt.Errorf("%w: %q", overtime.ErrUnknownBranchKey, key)
		}
		policyKey = parsed
	}
	search := overtime.FoldText(filter.Search)

	branches, err := s.branchRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]branch.BranchResponse, 0, len(branches))
	for _, b := range branches {
		if search != "" && !strings.Contains(overtime.FoldText(b.Label()), search) {
			continue
		}
		resp := s.toResponse(b)
		if policyKey != "" && resp.PolicyKey != string(policyKey) {
			continue
		}
		responses = append(responses, resp)
	}

	return responses, nil
}

// ResolvePolicy previews the policy a branch would get, so a name can be checked before it is saved.
func (s *masterServiceImpl) ResolvePolicy(ctx context.Context, req branch.ResolvePolicyRequest) (branch.PolicyPreviewResponse, error) {
	if err := req.Validate(); err != nil {
		return branch.PolicyPreviewResponse{}, err
	}

	b := branch.Branch{Name: strings.TrimSpace(req.Name), City: strings.TrimSpace(req.City)}
	return branch.PolicyPreviewResponse{
		Label:     b.Label(),
		PolicyKey: string(s.resolver.Resolve(b.Label())),
	}, nil
}

func (s *masterServiceImpl) UpdateBranch(ctx context.Context, req branch.UpdateBranchRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if !validator.IsValidUUID(req.ID) {
		return branch.ErrBranchNotFound
	}
	if req.State != nil {
		state := strings.ToUpper(strings.TrimSpace(*req.State))
		req.State = &state
	}

	err := s.branchRepo.Update(ctx, req)
	if err != nil {
		if isPgError(err, "23505") {
			return branch.ErrBranchNameExists
		}
		return err
	}

	return nil
}

func (s *masterServiceImpl) DeleteBranch(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return branch.ErrBranchNotFound
	}

	err := s.branchRepo.Delete(ctx, id)
	if err != nil {
		if isPgError(err, "23503") { // foreign_key_violation
			return branch.ErrBranchInUse
		}
		return err
	}
	return nil
}

func (s *masterServiceImpl) toResponse(b branch.Branch) branch.BranchResponse {
	return branch.BranchResponse{
		ID:        b.ID,
		Name:      b.Name,
		City:      b.City,
		State:     b.State,
		PolicyKey: string(s.resolver.Resolve(b.Label())),
	}
}

func isPgError(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
