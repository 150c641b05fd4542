// seed carga el catálogo inicial de artículos desde un CSV exportado de la planilla de la clínica.
//
// Uso: go run ./cmd/seed [ruta/catalogo.csv] [latin1]
// Columnas: sku,name,category,unit,quantity,reorder_threshold,unit_price,expiry_date
// La cantidad inicial entra al ledger como RESTOCK con motivo "alta de artículo".
// Con "latin1" el archivo se decodifica desde ISO-8859-1 (exportaciones de Excel antiguas).
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/pawsitive-care/inventory-api/internal/application/dto"
	appinv "github.com/pawsitive-care/inventory-api/internal/application/inventory"
	"github.com/pawsitive-care/inventory-api/internal/application/usecase"
	"github.com/pawsitive-care/inventory-api/internal/domain"
	"github.com/pawsitive-care/inventory-api/internal/domain/inventory"
	"github.com/pawsitive-care/inventory-api/internal/infrastructure/postgres"
	"github.com/pawsitive-care/inventory-api/pkg/config"
	"github.com/pawsitive-care/inventory-api/pkg/logger"
)

const seedActor = "seed"

var header = []string{"sku", "name", "category", "unit", "quantity", "reorder_threshold", "unit_price", "expiry_date"}

func main() {
	path := "catalogo.csv"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	latin1 := len(os.Args) > 2 && strings.EqualFold(os.Args[2], "latin1")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Named("seed")

	f, err := os.Open(path)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("abrir CSV")
	}
	defer f.Close()

	var r io.Reader = f
	if latin1 {
		r = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}
	rows, err := readRows(r)
	if err != nil {
		log.Fatal().Err(err).Msg("leer CSV")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migrar esquema")
		}
	}

	classifier := inventory.NewClassifier(cfg.Inventory.ExpiryWindowDays)
	tx := postgres.NewTxRunner(pool)
	movements := appinv.NewMovementUseCase(tx, classifier, appinv.NewAlertHub(log))
	items := usecase.NewItemUseCase(
		postgres.NewItemRepository(pool),
		postgres.NewSupplierRepository(pool),
		tx, movements, classifier,
	)

	created, skipped := 0, 0
	for i, in := range rows {
		line := i + 2
		if _, err := items.Create(ctx, seedActor, in); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				skipped++
				log.Warn().Int("line", line).Str("sku", in.SKU).Msg("SKU existente, se omite")
				continue
			}
			log.Fatal().Err(err).Int("line", line).Msg("crear artículo")
		}
		created++
	}
	log.Info().Int("created", created).Int("skipped", skipped).Msg("catálogo cargado")
}

// readRows valida el encabezado y convierte cada fila en una solicitud de alta.
func readRows(r io.Reader) ([]dto.CreateItemRequest, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = len(header)

	first, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("encabezado: %w", err)
	}
	for i, h := range header {
		if !strings.EqualFold(strings.TrimPrefix(strings.TrimSpace(first[i]), "\ufeff"), h) {
			return nil, fmt.Errorf("encabezado: columna %d debe ser %q", i+1, h)
		}
	}

	var out []dto.CreateItemRequest
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		in, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		out = append(out, in)
	}
}

func parseRow(rec []string) (dto.CreateItemRequest, error) {
	qty, err := strconv.Atoi(strings.TrimSpace(rec[4]))
	if err != nil {
		return dto.CreateItemRequest{}, fmt.Errorf("quantity: %w", err)
	}
	threshold, err := strconv.Atoi(strings.TrimSpace(rec[5]))
	if err != nil {
		return dto.CreateItemRequest{}, fmt.Errorf("reorder_threshold: %w", err)
	}
	price, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(rec[6]), ",", "."))
	if err != nil {
		return dto.CreateItemRequest{}, fmt.Errorf("unit_price: %w", err)
	}
	in := dto.CreateItemRequest{
		SKU:              strings.TrimSpace(rec[0]),
		Name:             strings.TrimSpace(rec[1]),
		Category:         rec[2],
		Unit:             rec[3],
		InitialQuantity:  qty,
		ReorderThreshold: threshold,
		UnitPrice:        price,
	}
	if exp := strings.TrimSpace(rec[7]); exp != "" {
		in.ExpiryDate = &exp
	}
	return in, nil
}
