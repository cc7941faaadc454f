package service

import (
	"context"
	"strings"

	"github.com/noah-isme/eschool-portal/internal/models"
	"github.com/noah-isme/eschool-portal/pkg/apiclient"
)

// StaffService is the employee CRUD page plus its status toggle.
type StaffService struct {
	*CRUDService[models.Employee]
}

// NewStaffService constructs the staff service.
func NewStaffService(repo ResourceRepository[models.Employee], opts CRUDOptions) *StaffService {
	return &StaffService{CRUDService: NewCRUDService(repo, EmployeeEntity(), opts)}
}

// ToggleStatus flips an employee between active and inactive.
func (s *StaffService) ToggleStatus(ctx context.Context, tokens apiclient.TokenSource, id string) (*MutationResult[models.Employee], error) {
	return s.Mutate(ctx, tokens, id,
		func(e *models.Employee) { e.Status = e.ToggledStatus() },
		func(e *models.Employee) string {
			return "Employee is now " + strings.ReplaceAll(e.Status, "_", " ")
		})
}
