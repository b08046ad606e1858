package invoice

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/png"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/freelance-desk/internal/cache"
	domain "github.com/BruksfildServices01/freelance-desk/internal/domain/invoice"
	"github.com/BruksfildServices01/freelance-desk/internal/httperr"
	"github.com/BruksfildServices01/freelance-desk/internal/media"
	"github.com/BruksfildServices01/freelance-desk/internal/models"
)

type fakeRepo struct {
	mu       sync.Mutex
	nextID   uint
	invoices map[uint]models.Invoice
	projects map[uint]models.Project
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{invoices: map[uint]models.Invoice{}, projects: map[uint]models.Project{}}
}

func (f *fakeRepo) NumberExists(_ context.Context, n string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, inv := range f.invoices {
		if inv.InvoiceNumber == n {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) Create(_ context.Context, inv *models.Invoice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	inv.ID = f.nextID
	f.invoices[inv.ID] = *inv
	return nil
}

func (f *fakeRepo) Save(_ context.Context, inv *models.Invoice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invoices[inv.ID] = *inv
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, inv *models.Invoice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.invoices, inv.ID)
	return nil
}

func (f *fakeRepo) lookup(ref string, match func(models.Invoice) bool) (*models.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, inv := range f.invoices {
		if !match(inv) {
			continue
		}
		if inv.InvoiceNumber == ref || strconv.FormatUint(uint64(inv.ID), 10) == ref {
			c := inv
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) FindForWorkspace(_ context.Context, workspaceID uint, ref string) (*models.Invoice, error) {
	return f.lookup(ref, func(inv models.Invoice) bool { return inv.WorkspaceID == workspaceID })
}

func (f *fakeRepo) FindPublic(_ context.Context, ref string) (*models.Invoice, error) {
	return f.lookup(ref, func(models.Invoice) bool { return true })
}

func (f *fakeRepo) List(_ context.Context, workspaceID uint, status string) ([]models.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Invoice{}
	for _, inv := range f.invoices {
		if inv.WorkspaceID == workspaceID && (status == "" || inv.Status == status) {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (f *fakeRepo) FindProject(_ context.Context, workspaceID, projectID uint) (*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.projects[projectID]
	if !ok || p.WorkspaceID != workspaceID {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (f *fakeRepo) LinkProject(_ context.Context, projectID, invoiceID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.projects[projectID]
	if p.LinkedInvoiceID != nil {
		return false, nil
	}
	p.LinkedInvoiceID = &invoiceID
	f.projects[projectID] = p
	return true, nil
}

func (f *fakeRepo) UnlinkProjects(_ context.Context, invoiceID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, p := range f.projects {
		if p.LinkedInvoiceID != nil && *p.LinkedInvoiceID == invoiceID {
			p.LinkedInvoiceID = nil
			f.projects[id] = p
		}
	}
	return nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// ------------------------------------------------------

var scope = Scope{WorkspaceID: 1, UserID: 10}

func validInput() Input {
	return Input{
		BilledTo: models.Party{Name: " Client Co "},
		Items: []domain.RawItem{
			{ServiceID: "SRV-1", ServiceName: "Design", Quantity: domain.Num(2), Price: domain.Num(50)},
			{ServiceID: "SRV-2", ServiceName: "Hosting", Quantity: domain.Num(1), Price: domain.Num(20)},
		},
		Status:    "bogus",
		IssueDate: "2024-04-02",
	}
}

func TestCreateInvoiceDefaults(t *testing.T) {
	repo := newFakeRepo()
	inv, err := NewCreateInvoice(repo, nil, nil, nil, nil).Execute(context.Background(), scope, validInput())
	require.NoError(t, err)

	assert.Regexp(t, `^INV-02042024\d{3}$`, inv.InvoiceNumber)
	assert.Equal(t, "draft", inv.Status)
	assert.Equal(t, 120.0, inv.Subtotal)
	assert.Equal(t, 120.0, inv.Total)
	assert.Equal(t, "Client Co", inv.BilledTo.Name)
	assert.Equal(t, uint(10), inv.CreatedBy)
	assert.Equal(t, 2, inv.IssueDate.Day())
}

func TestCreateInvoiceValidation(t *testing.T) {
	uc := NewCreateInvoice(newFakeRepo(), nil, nil, nil, nil)

	in := validInput()
	in.BilledTo = models.Party{Email: "x@y.z"}
	_, err := uc.Execute(context.Background(), scope, in)
	assert.Equal(t, http.StatusBadRequest, httperr.StatusOf(err))

	in = validInput()
	in.DueDate = "next week"
	_, err = uc.Execute(context.Background(), scope, in)
	assert.True(t, httperr.IsBusiness(err, "invalid_due_date"))

	in = validInput()
	in.Logo = "data:image/png;base64," + strings.Repeat("A", 1300*1024)
	_, err = uc.Execute(context.Background(), scope, in)
	assert.EqualError(t, err, "Logo must be smaller than 900KB")
}

func TestCreateInvoiceExplicitNumber(t *testing.T) {
	uc := NewCreateInvoice(newFakeRepo(), nil, nil, nil, nil)

	in := validInput()
	in.InvoiceNumber = "  INV-CUSTOM-1 "
	inv, err := uc.Execute(context.Background(), scope, in)
	require.NoError(t, err)
	assert.Equal(t, "INV-CUSTOM-1", inv.InvoiceNumber)

	// numbers are unique across workspaces
	_, err = uc.Execute(context.Background(), Scope{WorkspaceID: 2, UserID: 3}, in)
	assert.True(t, httperr.IsBusiness(err, "invoice_number_taken"))
	assert.Equal(t, http.StatusBadRequest, httperr.StatusOf(err))
}

func TestCreateInvoiceNumbersNeverCollide(t *testing.T) {
	uc := NewCreateInvoice(newFakeRepo(), nil, nil, nil, nil)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		inv, err := uc.Execute(context.Background(), scope, validInput())
		require.NoError(t, err)
		require.False(t, seen[inv.InvoiceNumber])
		seen[inv.InvoiceNumber] = true
	}
}

func TestCreateInvoiceProjectLink(t *testing.T) {
	repo := newFakeRepo()
	repo.projects[7] = models.Project{ID: 7, WorkspaceID: 1}
	repo.projects[8] = models.Project{ID: 8, WorkspaceID: 2}
	uc := NewCreateInvoice(repo, nil, nil, nil, nil)

	in := validInput()
	pid := uint(7)
	in.ProjectID = &pid
	inv, err := uc.Execute(context.Background(), scope, in)
	require.NoError(t, err)
	assert.Equal(t, inv.ID, *repo.projects[7].LinkedInvoiceID)

	_, err = uc.Execute(context.Background(), scope, in)
	assert.Equal(t, http.StatusConflict, httperr.StatusOf(err))

	other := uint(8)
	in.ProjectID = &other
	_, err = uc.Execute(context.Background(), scope, in)
	assert.Equal(t, http.StatusNotFound, httperr.StatusOf(err))
}

type countingPutter struct {
	mu   sync.Mutex
	puts int
}

func (p *countingPutter) PutObject(context.Context, *s3.PutObjectInput, ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.puts++
	return &s3.PutObjectOutput{}, nil
}

func logoDataURL(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestCreateInvoiceUploadsLogoOnlyWhenAccepted(t *testing.T) {
	repo := newFakeRepo()
	repo.projects[7] = models.Project{ID: 7, WorkspaceID: 1}
	putter := &countingPutter{}
	uc := NewCreateInvoice(repo, media.NewOffloader(putter, "media", "https://cdn.example.com"), nil, nil, nil)

	in := validInput()
	in.Logo = logoDataURL(t)
	in.InvoiceNumber = "INV-TAKEN"
	pid := uint(7)
	in.ProjectID = &pid

	inv, err := uc.Execute(context.Background(), scope, in)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(inv.Logo, "https://cdn.example.com/invoice-logos/"), inv.Logo)
	assert.Equal(t, 1, putter.puts)

	// project already linked
	in.InvoiceNumber = ""
	_, err = uc.Execute(context.Background(), scope, in)
	assert.Equal(t, http.StatusConflict, httperr.StatusOf(err))

	// number already used
	in.ProjectID = nil
	in.InvoiceNumber = "INV-TAKEN"
	_, err = uc.Execute(context.Background(), scope, in)
	assert.True(t, httperr.IsBusiness(err, "invoice_number_taken"))

	assert.Equal(t, 1, putter.puts)
}

func TestUpdateStatusIsStrict(t *testing.T) {
	repo := newFakeRepo()
	c := cache.NewMemory()
	inv, err := NewCreateInvoice(repo, nil, nil, nil, nil).Execute(context.Background(), scope, validInput())
	require.NoError(t, err)

	c.Set(context.Background(), cache.InvoiceKey(inv.InvoiceNumber), []byte("stale"))

	uc := NewUpdateInvoiceStatus(repo, c)
	_, err = uc.Execute(context.Background(), scope, inv.InvoiceNumber, "cancelled")
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))

	got, err := uc.Execute(context.Background(), scope, strconv.Itoa(int(inv.ID)), "paid")
	require.NoError(t, err)
	assert.Equal(t, "paid", got.Status)

	_, hit := c.Get(context.Background(), cache.InvoiceKey(inv.InvoiceNumber))
	assert.False(t, hit)

	_, err = uc.Execute(context.Background(), Scope{WorkspaceID: 99}, inv.InvoiceNumber, "paid")
	assert.Equal(t, http.StatusNotFound, httperr.StatusOf(err))
}

func TestUpdateInvoiceRecomputesTotals(t *testing.T) {
	repo := newFakeRepo()
	inv, err := NewCreateInvoice(repo, nil, nil, nil, nil).Execute(context.Background(), scope, validInput())
	require.NoError(t, err)

	in := validInput()
	in.Items = []domain.RawItem{{ServiceID: "SRV-9", ServiceName: "Audit", Quantity: domain.Num(3), Price: domain.Num(10)}}
	in.Status = "sent"
	got, err := NewUpdateInvoice(repo, cache.Nop{}, nil, nil).Execute(context.Background(), scope, inv.InvoiceNumber, in)
	require.NoError(t, err)

	assert.Equal(t, 30.0, got.Total)
	assert.Equal(t, "sent", got.Status)
	assert.Equal(t, inv.InvoiceNumber, got.InvoiceNumber)
}

func TestDeleteInvoiceUnlinksProject(t *testing.T) {
	repo := newFakeRepo()
	repo.projects[7] = models.Project{ID: 7, WorkspaceID: 1}

	in := validInput()
	pid := uint(7)
	in.ProjectID = &pid
	inv, err := NewCreateInvoice(repo, nil, nil, nil, nil).Execute(context.Background(), scope, in)
	require.NoError(t, err)

	require.NoError(t, NewDeleteInvoice(repo, cache.Nop{}, nil).Execute(context.Background(), scope, inv.InvoiceNumber))
	assert.Nil(t, repo.projects[7].LinkedInvoiceID)

	_, err = NewGetInvoice(repo).Execute(context.Background(), scope, inv.InvoiceNumber)
	assert.Equal(t, http.StatusNotFound, httperr.StatusOf(err))
}

func TestListInvoicesStatusFilter(t *testing.T) {
	repo := newFakeRepo()
	_, err := NewCreateInvoice(repo, nil, nil, nil, nil).Execute(context.Background(), scope, validInput())
	require.NoError(t, err)

	list, err := NewListInvoices(repo).Execute(context.Background(), scope, "draft")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	list, err = NewListInvoices(repo).Execute(context.Background(), scope, "paid")
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = NewListInvoices(repo).Execute(context.Background(), scope, "void")
	assert.Equal(t, http.StatusBadRequest, httperr.StatusOf(err))
}
