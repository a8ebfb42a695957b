package master

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/overtime-backend-go/internal/domain/master/branch"
	"github.com/cmlabs-hris/overtime-backend-go/internal/domain/overtime"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBranchRepo struct {
	branches  map[string]branch.Branch
	createErr error
	updateErr error
	deleteErr error
	lastState string
}

func (r *fakeBranchRepo) Create(ctx context.Context, b branch.Branch) (branch.Branch, error) {
	if r.createErr != nil {
		return branch.Branch{}, r.createErr
	}
	b.ID = uuid.NewString()
	r.branches[b.ID] = b
	return b, nil
}

func (r *fakeBranchRepo) GetByID(ctx context.Context, id string) (branch.Branch, error) {
	b, ok := r.branches[id]
	if !ok {
		return branch.Branch{}, branch.ErrBranchNotFound
	}
	return b, nil
}

func (r *fakeBranchRepo) List(ctx context.Context) ([]branch.Branch, error) {
	out := make([]branch.Branch, 0, len(r.branches))
	for _, b := range r.branches {
		out = append(out, b)
	}
	return out, nil
}

func (r *fakeBranchRepo) Update(ctx context.Context, req branch.UpdateBranchRequest) error {
	if req.State != nil {
		r.lastState = *req.State
	}
	return r.updateErr
}

func (r *fakeBranchRepo) Delete(ctx context.Context, id string) error {
	return r.deleteErr
}

func newTestMasterService() (MasterService, *fakeBranchRepo) {
	repo := &fakeBranchRepo{branches: map[string]branch.Branch{}}
	resolver := overtime.NewBranchResolver([]overtime.BranchAlias{
		{Match: "sao jose", Key: overtime.BranchKeySplitShift},
	})
	return NewMasterService(repo, resolver), repo
}

func TestCreateBranch(t *testing.T) {
	svc, _ := newTestMasterService()
	ctx := context.Background()

	split, err := svc.CreateBranch(ctx, branch.CreateBranchRequest{Name: "Filial Sul", City: "São José", State: "sc"})
	require.NoError(t, err)
	assert.Equal(t, "split_shift", split.PolicyKey)
	assert.Equal(t, "SC", split.State)

	def, err := svc.CreateBranch(ctx, branch.CreateBranchRequest{Name: "Matriz", City: "Joinville", State: "SC"})
	require.NoError(t, err)
	assert.Equal(t, "default", def.PolicyKey)

	got, err := svc.GetBranch(ctx, split.ID)
	require.NoError(t, err)
	assert.Equal(t, "Filial Sul", got.Name)

	list, err := svc.ListBranches(ctx, branch.ListBranchesFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestListBranches_Filter(t *testing.T) {
	svc, _ := newTestMasterService()
	ctx := context.Background()

	for _, req := range []branch.CreateBranchRequest{
		{Name: "Filial Sul", City: "São José", State: "SC"},
		{Name: "Matriz", City: "Joinville", State: "SC"},
		{Name: "Filial Norte", City: "Curitiba", State: "PR"},
	} {
		_, err := svc.CreateBranch(ctx, req)
		require.NoError(t, err)
	}

	tests := []struct {
		name      string
		filter    branch.ListBranchesFilter
		wantNames []string
	}{
		{name: "no filter", filter: branch.ListBranchesFilter{}, wantNames: []string{"Filial Sul", "Matriz", "Filial Norte"}},
		{name: "split shift", filter: branch.ListBranchesFilter{PolicyKey: "split_shift"}, wantNames: []string{"Filial Sul"}},
		{name: "default", filter: branch.ListBranchesFilter{PolicyKey: " default "}, wantNames: []string{"Matriz", "Filial Norte"}},
		{name: "search ignores accents", filter: branch.ListBranchesFilter{Search: "SAO JOSE"}, wantNames: []string{"Filial Sul"}},
		{name: "search and policy", filter: branch.ListBranchesFilter{PolicyKey: "default", Search: "filial"}, wantNames: []string{"Filial Norte"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := svc.ListBranches(ctx, tt.filter)
			require.NoError(t, err)
			names := make([]string, 0, len(list))
			for _, b := range list {
				names = append(names, b.Name)
			}
			assert.ElementsMatch(t, tt.wantNames, names)
		})
	}

	_, err := svc.ListBranches(ctx, branch.ListBranchesFilter{PolicyKey: "night"})
	assert.ErrorIs(t, err, overtime.ErrUnknownBranchKey)
}

func TestResolvePolicy(t *testing.T) {
	svc, repo := newTestMasterService()
	ctx := context.Background()

	preview, err := svc.ResolvePolicy(ctx, branch.ResolvePolicyRequest{Name: " Filial ", City: "São José"})
	require.NoError(t, err)
	assert.Equal(t, branch.PolicyPreviewResponse{Label: "Filial São José", PolicyKey: "split_shift"}, preview)
	assert.Empty(t, repo.branches)

	preview, err = svc.ResolvePolicy(ctx, branch.ResolvePolicyRequest{Name: "Matriz"})
	require.NoError(t, err)
	assert.Equal(t, "default", preview.PolicyKey)

	_, err = svc.ResolvePolicy(ctx, branch.ResolvePolicyRequest{City: "São José"})
	assert.Error(t, err)
}

func TestCreateBranch_Errors(t *testing.T) {
	svc, repo := newTestMasterService()
	ctx := context.Background()

	_, err := svc.CreateBranch(ctx, branch.CreateBranchRequest{Name: "", City: "X", State: "SCX"})
	assert.Error(t, err)

	repo.createErr = &pgconn.PgError{Code: "23505"}
	_, err = svc.CreateBranch(ctx, branch.CreateBranchRequest{Name: "Matriz", City: "Joinville", State: "SC"})
	assert.ErrorIs(t, err, branch.ErrBranchNameExists)
}

func TestUpdateAndDeleteBranch(t *testing.T) {
	svc, repo := newTestMasterService()
	ctx := context.Background()
	id := uuid.NewString()

	state := "pr"
	require.NoError(t, svc.UpdateBranch(ctx, branch.UpdateBranchRequest{ID: id, State: &state}))
	assert.Equal(t, "PR", repo.lastState)

	repo.updateErr = &pgconn.PgError{Code: "23505"}
	name := "Matriz"
	assert.ErrorIs(t, svc.UpdateBranch(ctx, branch.UpdateBranchRequest{ID: id, Name: &name}), branch.ErrBranchNameExists)

	assert.ErrorIs(t, svc.DeleteBranch(ctx, "nope"), branch.ErrBranchNotFound)

	repo.deleteErr = &pgconn.PgError{Code: "23503"}
	assert.ErrorIs(t, svc.DeleteBranch(ctx, id), branch.ErrBranchInUse)

	_, err := svc.GetBranch(ctx, "nope")
	assert.ErrorIs(t, err, branch.ErrBranchNotFound)
}
