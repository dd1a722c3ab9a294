package services

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/Fury174k/pharmstock/internal/common"
	"github.com/Fury174k/pharmstock/internal/dbx"
	sc "github.com/Fury174k/pharmstock/internal/server/config"
	"github.com/Fury174k/pharmstock/internal/server/models"
	"github.com/Fury174k/pharmstock/internal/server/repositories/repomanager"
)

// Seams for testing the S3 client without a real endpoint.
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in)
	}
)

// ImportSummary reports the outcome of a CSV import.
type ImportSummary struct {
	Created int
	Updated int
	Errors  []string
}

// ImportService ingests product CSV files: rows are upserted by SKU and the
// raw file is archived to object storage.
type ImportService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
}

func NewImportService(db *sql.DB, m repomanager.RepositoryManager, cfg *sc.Config) *ImportService {
	return &ImportService{db: db, repomanager: m, config: cfg}
}

// GetRandomStorageKey returns a date-partitioned object key for an archived
// import file.
func GetRandomStorageKey(filename string) string {
	d := time.Now()
	return fmt.Sprintf("imports/%d/%d/%d/%v-%s", d.Year(), d.Month(), d.Day(), uuid.New(), filename)
}

// ImportCSV parses r as a product CSV and upserts each row by SKU. Expected
// header: sku,name,category,price,stock,reorder_level (order-insensitive;
// only sku and name are required). Valid rows commit in one transaction;
// malformed rows are skipped and reported in the summary. The raw file is
// archived to S3 afterwards; archive failures are reported, not fatal.
func (s *ImportService) ImportCSV(ctx context.Context, filename string, r io.Reader) (*ImportSummary, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading upload: %w", err)
	}

	rows, errs, err := parseProductCSV(raw)
	if err != nil {
		return nil, err
	}

	summary := &ImportSummary{Errors: errs}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, row := range rows {
			created, err := s.upsertRow(ctx, tx, row)
			if err != nil {
				return err
			}
			if created {
				summary.Created++
			} else {
				summary.Updated++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.archive(ctx, filename, raw); err != nil {
		summary.Errors = append(summary.Errors, fmt.Sprintf("archive: %v", err))
	}

	return summary, nil
}

// productRow is one parsed CSV line.
type productRow struct {
	sku          string
	name         string
	category     string
	price        float64
	stock        int
	reorderLevel int
}

// parseProductCSV returns the valid rows, per-row error strings, and a fatal
// error for files that cannot be processed at all.
func parseProductCSV(raw []byte) ([]productRow, []string, error) {
	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, nil, common.ErrorValidation
	}

	cols := map[string]int{}
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := cols["sku"]; !ok {
		return nil, nil, common.ErrorValidation
	}
	if _, ok := cols["name"]; !ok {
		return nil, nil, common.ErrorValidation
	}

	field := func(record []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var (
		rows []productRow
		errs []string
	)
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			errs = append(errs, fmt.Sprintf("row %d: %v", line, err))
			continue
		}

		row := productRow{
			sku:      field(record, "sku"),
			name:     field(record, "name"),
			category: field(record, "category"),
		}
		if row.sku == "" || row.name == "" {
			errs = append(errs, fmt.Sprintf("row %d: sku and name are required", line))
			continue
		}

		bad := false
		if v := field(record, "price"); v != "" {
			if row.price, err = strconv.ParseFloat(v, 64); err != nil || row.price < 0 {
				errs = append(errs, fmt.Sprintf("row %d: invalid price %q", line, v))
				bad = true
			}
		}
		if v := field(record, "stock"); v != "" {
			if row.stock, err = strconv.Atoi(v); err != nil || row.stock < 0 {
				errs = append(errs, fmt.Sprintf("row %d: invalid stock %q", line, v))
				bad = true
			}
		}
		if v := field(record, "reorder_level"); v != "" {
			if row.reorderLevel, err = strconv.Atoi(v); err != nil || row.reorderLevel < 0 {
				errs = append(errs, fmt.Sprintf("row %d: invalid reorder_level %q", line, v))
				bad = true
			}
		}
		if bad {
			continue
		}

		rows = append(rows, row)
	}

	return rows, errs, nil
}

// upsertRow creates or updates one product by SKU and reports whether it was
// created. Stock changes are logged as movements and may open alerts.
func (s *ImportService) upsertRow(ctx context.Context, tx dbx.DBTX, row productRow) (bool, error) {
	productRepo := s.repomanager.Products(tx)

	p, err := productRepo.GetBySKU(ctx, row.sku)
	if errors.Is(err, common.ErrorNotFound) {
		p = &models.Product{
			SKU:          row.sku,
			Name:         row.name,
			Category:     row.category,
			Price:        row.price,
			Stock:        row.stock,
			ReorderLevel: row.reorderLevel,
		}
		if p, err = productRepo.Create(ctx, p); err != nil {
			return false, err
		}
		if p.Stock > 0 {
			if err := s.recordMovement(ctx, tx, p.ID, models.MovementIn, p.Stock); err != nil {
				return false, err
			}
		}
		return true, s.maybeOpenAlert(ctx, tx, p)
	}
	if err != nil {
		return false, err
	}

	oldStock := p.Stock
	p.Name = row.name
	p.Category = row.category
	p.Price = row.price
	p.Stock = row.stock
	p.ReorderLevel = row.reorderLevel

	if p, err = productRepo.Update(ctx, p); err != nil {
		return false, err
	}
	if delta := p.Stock - oldStock; delta != 0 {
		direction := models.MovementIn
		if delta < 0 {
			direction = models.MovementOut
			delta = -delta
		}
		if err := s.recordMovement(ctx, tx, p.ID, direction, delta); err != nil {
			return false, err
		}
	}
	return false, s.maybeOpenAlert(ctx, tx, p)
}

func (s *ImportService) recordMovement(ctx context.Context, tx dbx.DBTX, productID, direction string, quantity int) error {
	_, err := s.repomanager.Movements(tx).Create(ctx, &models.StockMovement{
		ProductID: productID,
		Direction: direction,
		Quantity:  quantity,
		Reason:    "csv import",
	})
	return err
}

func (s *ImportService) maybeOpenAlert(ctx context.Context, tx dbx.DBTX, p *models.Product) error {
	if !p.LowOnStock() {
		return nil
	}
	repo := s.repomanager.Alerts(tx)
	open, err := repo.HasOpenForProduct(ctx, p.ID)
	if err != nil {
		return err
	}
	if open {
		return nil
	}
	_, err = repo.Create(ctx, &models.Alert{
		ProductID:    p.ID,
		Stock:        p.Stock,
		ReorderLevel: p.ReorderLevel,
	})
	return err
}

// archive uploads the raw CSV to object storage. Disabled when no S3
// endpoint is configured.
func (s *ImportService) archive(ctx context.Context, filename string, raw []byte) error {
	if s.config.S3BaseEndpoint == "" {
		return nil
	}

	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,     // MINIO_ROOT_USER
			s.config.S3RootPassword, // MINIO_ROOT_PASSWORD
			"",
		)))
	if err != nil {
		return err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	bucket := s.config.S3Bucket
	key := GetRandomStorageKey(filename)

	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
		Body:   bytes.NewReader(raw),
	})
	return err
}
