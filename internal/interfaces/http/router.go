package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Logistica-api/internal/application/auth"
	"github.com/jhoicas/Logistica-api/internal/application/catalog"
	"github.com/jhoicas/Logistica-api/internal/application/document"
	"github.com/jhoicas/Logistica-api/internal/application/scan"
	"github.com/jhoicas/Logistica-api/internal/application/sequence"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	CatalogUC  *catalog.CatalogUseCase
	ScanUC     *scan.ProcessScanUseCase
	AggUC      *document.AggregatorUseCase
	PDFUC      *document.PDFUseCase
	SequenceUC *sequence.GapUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Escaneos (protegido)
	scanHandler := NewScanHandler(deps.ScanUC, deps.AggUC)
	protected.Post("/scans", scanHandler.ProcessScan)
	protected.Post("/racks/dispatch", scanHandler.DispatchRack)

	// Documentos de movimiento (protegido)
	documents := protected.Group("/documents")
	documentHandler := NewDocumentHandler(deps.AggUC, deps.PDFUC)
	documents.Post("/", documentHandler.Create)
	documents.Get("/", documentHandler.List)
	documents.Get("/:id", documentHandler.GetByID)
	documents.Post("/:id/close", documentHandler.Close)
	documents.Get("/:id/pdf", documentHandler.PDF)

	// Secuenciado del piso de venta (protegido)
	seqGroup := protected.Group("/sequence")
	sequenceHandler := NewSequenceHandler(deps.SequenceUC)
	seqGroup.Post("/gaps", sequenceHandler.PrepareGap)
	seqGroup.Post("/gaps/:id/slots", sequenceHandler.InsertSlot)

	// Bodegas (protegido; altas solo admin/supervisor)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.CatalogUC)
	warehouses.Post("/", RequireRole("admin", "supervisor"), warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
}
