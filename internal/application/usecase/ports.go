package usecase

import (
	"context"
	"io"

	"github.com/jhoicas/Muebleria-admin/internal/application/dto"
	"github.com/jhoicas/Muebleria-admin/internal/domain/entity"
)

// BackendGateway puerto hacia el API REST de la fábrica. Lo implementa
// infrastructure/backend; los tests usan un doble.
type BackendGateway interface {
	ListProducts(ctx context.Context) ([]entity.Product, error)
	ListWorkshops(ctx context.Context) ([]entity.Workshop, error)
	ListProductTypes(ctx context.Context) ([]entity.ProductType, error)
	ListMaterials(ctx context.Context) ([]entity.Material, error)
	GetProduct(ctx context.Context, id int64) (*entity.Product, error)

	CreateProduct(ctx context.Context, draft entity.ProductDraft) (*entity.Product, error)
	UpdateProduct(ctx context.Context, id int64, draft entity.ProductDraft) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	DeleteProductsBatch(ctx context.Context, ids []int64) (string, error)

	ClearProductWorkshops(ctx context.Context, productID int64) error
	AssignWorkshop(ctx context.Context, productID, workshopID int64, order int) error

	CalculateMaterials(ctx context.Context, req dto.CalculationRequest) (int, error)

	DownloadBackup(ctx context.Context) ([]byte, error)
	ImportDatabase(ctx context.Context, filename string, file io.Reader) error
}
