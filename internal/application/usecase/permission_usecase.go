package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/vendor-management/internal/application/dto"
	"github.com/jhoicas/vendor-management/internal/domain"
	"github.com/jhoicas/vendor-management/internal/domain/authz"
	"github.com/jhoicas/vendor-management/internal/domain/catalog"
	"github.com/jhoicas/vendor-management/internal/domain/entity"
	"github.com/jhoicas/vendor-management/internal/domain/repository"
	"github.com/jhoicas/vendor-management/pkg/logger"
)

// Acciones de asignación reportadas a métricas.
const (
	ActionGrant  = "grant"
	ActionRevoke = "revoke"
)

// SeedReport codenames creados, renombrados y sin cambios en una siembra.
type SeedReport struct {
	Version   int
	Created   []string
	Renamed   []string
	Unchanged []string
}

// PermissionPolicy opciones de administración de permisos.
type PermissionPolicy struct {
	// ProtectCatalog rechaza editar o borrar permisos sembrados desde el catálogo.
	ProtectCatalog bool
}

// PermissionUseCase siembra del catálogo, CRUD de permisos y grants por usuario.
type PermissionUseCase struct {
	permissions repository.PermissionRepository
	users       repository.UserRepository
	policy      PermissionPolicy
	metrics     Metrics
	log         *logger.Logger
}

// NewPermissionUseCase construye el caso de uso.
func NewPermissionUseCase(permissions repository.PermissionRepository, users repository.UserRepository, policy PermissionPolicy, metrics Metrics, log *logger.Logger) *PermissionUseCase {
	return &PermissionUseCase{permissions: permissions, users: users, policy: policy, metrics: metrics, log: log.Component("permissions")}
}

// SeedCatalog asegura que cada entrada del catálogo exista:
// si falta la crea, si cambió el nombre actualiza solo el nombre, si coincide no hace nada.
// Nunca borra. Dos siembras simultáneas convergen: la violación de unicidad se relee.
func (uc *PermissionUseCase) SeedCatalog(ctx context.Context) (*SeedReport, error) {
	report := &SeedReport{Version: catalog.Version}
	for _, e := range catalog.Entries() {
		outcome, err := uc.seedEntry(ctx, e)
		if err != nil {
			return nil, fmt.Errorf("sembrar %s: %w", e.Codename, err)
		}
		switch outcome {
		case seedCreated:
			report.Created = append(report.Created, e.Codename)
		case seedRenamed:
			report.Renamed = append(report.Renamed, e.Codename)
		default:
			report.Unchanged = append(report.Unchanged, e.Codename)
		}
	}
	uc.metrics.PermissionsSeeded(len(report.Created), len(report.Renamed))
	uc.log.Info().
		Int("version", report.Version).
		Strs("created", report.Created).
		Strs("renamed", report.Renamed).
		Int("unchanged", len(report.Unchanged)).
		Msg("catálogo de permisos sembrado")
	return report, nil
}

type seedOutcome int

const (
	seedUnchanged seedOutcome = iota
	seedCreated
	seedRenamed
)

func (uc *PermissionUseCase) seedEntry(ctx context.Context, e catalog.Entry) (seedOutcome, error) {
	existing, err := uc.permissions.GetByCodename(ctx, e.Codename)
	if err != nil {
		return seedUnchanged, err
	}
	if existing == nil {
		now := time.Now()
		p := &entity.Permission{
			PermissionRef: entity.PermissionRef{ID: uuid.New().String(), Codename: e.Codename},
			Name:          e.Name,
			Category:      e.Category,
			Description:   e.Description,
			CreatedBy:     "system",
			Origin:        entity.OriginCatalog,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		err := uc.permissions.Create(ctx, p)
		if err == nil {
			return seedCreated, nil
		}
		if !errors.Is(err, domain.ErrDuplicate) {
			return seedUnchanged, err
		}
		// otro proceso lo creó entre la lectura y el insert
		existing, err = uc.permissions.GetByCodename(ctx, e.Codename)
		if err != nil {
			return seedUnchanged, err
		}
		if existing == nil {
			return seedUnchanged, fmt.Errorf("permiso %s no encontrado tras conflicto", e.Codename)
		}
	}
	if existing.Name == e.Name {
		return seedUnchanged, nil
	}
	if err := uc.permissions.UpdateName(ctx, existing.ID, e.Name, time.Now()); err != nil {
		return seedUnchanged, err
	}
	return seedRenamed, nil
}

// Assign otorga (checked=true) o revoca (checked=false) un permiso a un usuario.
// Es idempotente. Usuario o permiso inexistente -> domain.ErrNotFound sin cambios.
func (uc *PermissionUseCase) Assign(ctx context.Context, actor *authz.Actor, in dto.AssignPermissionRequest) (*dto.AssignPermissionResponse, error) {
	if !authz.Allow(actor, catalog.AssignUserPermission) {
		return nil, domain.ErrForbidden
	}
	if in.Checked == nil {
		return nil, domain.NewValidationError("checked", "es requerido")
	}
	user, err := uc.users.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("usuario %s: %w", in.UserID, domain.ErrNotFound)
	}
	perm, err := uc.permissions.GetByID(ctx, in.PermissionID)
	if err != nil {
		return nil, err
	}
	if perm == nil {
		return nil, fmt.Errorf("permiso %s: %w", in.PermissionID, domain.ErrNotFound)
	}

	var (
		changed bool
		message string
		action  string
	)
	if *in.Checked {
		changed, err = uc.users.AddPermission(ctx, user.ID, perm.ID)
		message = fmt.Sprintf("%s asignado a %s correctamente.", perm.Name, user.Username)
		action = ActionGrant
	} else {
		changed, err = uc.users.RemovePermission(ctx, user.ID, perm.ID)
		message = fmt.Sprintf("%s removido de %s correctamente.", perm.Name, user.Username)
		action = ActionRevoke
	}
	if err != nil {
		return nil, err
	}
	uc.metrics.PermissionAssigned(action)
	uc.log.Info().
		Str("action", action).
		Str("codename", perm.Codename).
		Str("user_id", user.ID).
		Str("by", actor.Username).
		Bool("changed", changed).
		Msg(message)
	return &dto.AssignPermissionResponse{Message: message, Granted: *in.Checked, Changed: changed}, nil
}

// List todos los permisos ordenados por categoría y nombre.
func (uc *PermissionUseCase) List(ctx context.Context, actor *authz.Actor) (*dto.PermissionListResponse, error) {
	if !authz.Allow(actor, catalog.ManagePermissionRecord) {
		return nil, domain.ErrForbidden
	}
	list, err := uc.permissions.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PermissionResponse, 0, len(list))
	for _, p := range list {
		items = append(items, toPermissionResponse(p))
	}
	return &dto.PermissionListResponse{Items: items, Page: dto.PageResponse{Limit: len(items), Total: len(items)}}, nil
}

// Create registra un permiso propio (Origin=custom).
func (uc *PermissionUseCase) Create(ctx context.Context, actor *authz.Actor, in dto.PermissionRequest) (*dto.PermissionResponse, error) {
	if !authz.Allow(actor, catalog.ManagePermissionRecord) {
		return nil, domain.ErrForbidden
	}
	now := time.Now()
	p := &entity.Permission{
		PermissionRef: entity.PermissionRef{ID: uuid.New().String(), Codename: in.Codename},
		CreatedBy:     actor.Username,
		Origin:        entity.OriginCustom,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := applyPermissionRequest(p, in); err != nil {
		return nil, err
	}
	if err := uc.permissions.Create(ctx, p); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.NewValidationError("codename", "ya existe un permiso con ese codename")
		}
		return nil, err
	}
	uc.log.Info().Str("codename", p.Codename).Str("by", actor.Username).Msg(p.Name + " creado correctamente.")
	out := toPermissionResponse(p)
	return &out, nil
}

// Update edita nombre, codename, categoría y descripción.
func (uc *PermissionUseCase) Update(ctx context.Context, actor *authz.Actor, id string, in dto.PermissionRequest) (*dto.PermissionResponse, error) {
	p, err := uc.editable(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := applyPermissionRequest(p, in); err != nil {
		return nil, err
	}
	p.Codename = in.Codename
	p.UpdatedAt = time.Now()
	if err := uc.permissions.Update(ctx, p); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.NewValidationError("codename", "ya existe un permiso con ese codename")
		}
		return nil, err
	}
	out := toPermissionResponse(p)
	return &out, nil
}

// Delete borra el permiso y sus grants.
func (uc *PermissionUseCase) Delete(ctx context.Context, actor *authz.Actor, id string) error {
	p, err := uc.editable(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := uc.permissions.Delete(ctx, p.ID); err != nil {
		return err
	}
	uc.log.Info().Str("codename", p.Codename).Str("by", actor.Username).Msg(p.Name + " eliminado correctamente.")
	return nil
}

func (uc *PermissionUseCase) editable(ctx context.Context, actor *authz.Actor, id string) (*entity.Permission, error) {
	if !authz.Allow(actor, catalog.ManagePermissionRecord) {
		return nil, domain.ErrForbidden
	}
	p, err := uc.permissions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if uc.policy.ProtectCatalog && p.Origin == entity.OriginCatalog {
		return nil, fmt.Errorf("%s pertenece al catálogo: %w", p.Codename, domain.ErrForbidden)
	}
	return p, nil
}

func applyPermissionRequest(p *entity.Permission, in dto.PermissionRequest) error {
	p.Name = in.Name
	p.Description = in.Description
	p.Category = in.Category
	if p.Category == "" {
		p.Category = entity.CategoryProductManagement
	}
	if !entity.ValidCategory(p.Category) {
		return domain.NewValidationError("category", "categoría inválida")
	}
	return nil
}

// Users lista usuarios para la pantalla de asignación.
func (uc *PermissionUseCase) Users(ctx context.Context, actor *authz.Actor, page dto.PageRequest) (*dto.UserListResponse, error) {
	if !authz.Allow(actor, catalog.AssignUserPermission) {
		return nil, domain.ErrForbidden
	}
	page.DefaultPage()
	list, err := uc.users.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, toUserResponse(u))
	}
	return &dto.UserListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total}}, nil
}

// UserDetail usuario con todos los permisos y los ids que tiene otorgados.
func (uc *PermissionUseCase) UserDetail(ctx context.Context, actor *authz.Actor, userID string) (*dto.UserDetailResponse, error) {
	if !authz.Allow(actor, catalog.AssignUserPermission) {
		return nil, domain.ErrForbidden
	}
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	perms, err := uc.permissions.List(ctx)
	if err != nil {
		return nil, err
	}
	granted, err := uc.users.PermissionIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := &dto.UserDetailResponse{
		User:        toUserResponse(user),
		Permissions: make([]dto.PermissionResponse, 0, len(perms)),
		GrantedIDs:  granted,
	}
	for _, p := range perms {
		out.Permissions = append(out.Permissions, toPermissionResponse(p))
	}
	return out, nil
}
