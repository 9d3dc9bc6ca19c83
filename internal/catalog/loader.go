package catalog

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"farmer-offers-service/internal/config"
	"farmer-offers-service/internal/engine"
	"farmer-offers-service/internal/models"
)

// WorkbookCacheKey is the redis key holding the raw catalog workbook bytes.
const WorkbookCacheKey = "catalog:workbook"

// Loader fetches the catalog workbook and parses it into a Catalog. The raw
// workbook bytes are cached in redis with a TTL when redis is available;
// without redis every load fetches fresh.
type Loader struct {
	cfg    *config.Config
	redis  *redis.Client
	client *http.Client
	logger *logrus.Entry
}

// NewLoader creates a catalog loader. redisClient may be nil.
func NewLoader(cfg *config.Config, redisClient *redis.Client, logger *logrus.Logger) *Loader {
	return &Loader{
		cfg:    cfg,
		redis:  redisClient,
		client: &http.Client{Timeout: 30 * time.Second},
		logger: logger.WithField("component", "catalog.loader"),
	}
}

// Load fetches (through the byte cache) and parses the catalog.
func (l *Loader) Load(ctx context.Context) (*Catalog, error) {
	data, err := l.fetch(ctx, false)
	if err != nil {
		return nil, err
	}
	return l.parse(data)
}

// Reload bypasses the byte cache, fetches the workbook fresh and refreshes
// the cache on success.
func (l *Loader) Reload(ctx context.Context) (*Catalog, error) {
	data, err := l.fetch(ctx, true)
	if err != nil {
		return nil, err
	}
	return l.parse(data)
}

func (l *Loader) fetch(ctx context.Context, bypassCache bool) ([]byte, error) {
	if !bypassCache && l.redis != nil {
		if data, err := l.redis.Get(ctx, WorkbookCacheKey).Bytes(); err == nil {
			l.logger.WithField("bytes", len(data)).Debug("Catalog workbook served from cache")
			return data, nil
		}
	}

	data, err := l.download(ctx)
	if err != nil {
		return nil, err
	}

	if l.redis != nil {
		ttl := time.Duration(l.cfg.CatalogCacheTTLMinutes) * time.Minute
		if err := l.redis.Set(ctx, WorkbookCacheKey, data, ttl).Err(); err != nil {
			l.logger.WithError(err).Warn("Failed to cache catalog workbook")
		}
	}

	return data, nil
}

func (l *Loader) download(ctx context.Context) ([]byte, error) {
	if l.cfg.CatalogURL != "" {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.cfg.CatalogURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to build catalog request: %w", err)
		}
		resp, err := l.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to download catalog: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("catalog download returned status %d", resp.StatusCode)
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog body: %w", err)
		}
		l.logger.WithField("bytes", len(data)).Info("Catalog workbook downloaded")
		return data, nil
	}

	if l.cfg.CatalogFile != "" {
		data, err := os.ReadFile(l.cfg.CatalogFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog file: %w", err)
		}
		return data, nil
	}

	return nil, fmt.Errorf("no catalog source configured (set CATALOG_URL or CATALOG_FILE)")
}

func (l *Loader) parse(data []byte) (*Catalog, error) {
	rows, err := ParseWorkbook(data, l.cfg.CatalogSheet, l.logger)
	if err != nil {
		return nil, err
	}
	return New(rows), nil
}

// ParseWorkbook reads catalog rows out of an xlsx workbook. The configured
// sheet is used when set, otherwise the first sheet. The header row must
// contain every required column (matched case-insensitively). Rows missing a
// product or SKU are skipped; malformed numeric cells default to 0; on a
// duplicate (Product, SKU) the first row wins. Each of these logs a warning.
func ParseWorkbook(data []byte, sheet string, logger *logrus.Entry) ([]models.CatalogRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in catalog workbook")
	}

	sheetName := sheets[0]
	if sheet != "" {
		found := false
		for _, name := range sheets {
			if strings.EqualFold(name, sheet) {
				sheetName = name
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("sheet %q not found in catalog workbook", sheet)
		}
	}

	excelRows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}
	if len(excelRows) < 2 {
		return nil, fmt.Errorf("catalog must have a header row and at least one data row")
	}

	columns, err := mapHeaders(excelRows[0])
	if err != nil {
		return nil, err
	}

	seen := make(map[string]int)
	var rows []models.CatalogRow
	for i, excelRow := range excelRows[1:] {
		rowNum := i + 2 // 1-indexed, after the header

		cell := func(column string) string {
			idx := columns[strings.ToLower(column)]
			if idx >= len(excelRow) {
				return ""
			}
			return strings.TrimSpace(excelRow[idx])
		}

		product := cell(models.ColumnProduct)
		sku := cell(models.ColumnSKU)
		if product == "" || sku == "" {
			logger.WithField("row", rowNum).Warn("Catalog row missing product or SKU, skipped")
			continue
		}

		if firstRow, dup := seen[product+"\x00"+sku]; dup {
			logger.WithFields(logrus.Fields{
				"row":      rowNum,
				"product":  product,
				"sku":      sku,
				"firstRow": firstRow,
			}).Warn("Duplicate (product, SKU) in catalog, first row wins")
			continue
		}
		seen[product+"\x00"+sku] = rowNum

		rows = append(rows, models.CatalogRow{
			Product:         product,
			SKU:             sku,
			FarmerPrice:     parseMoney(cell(models.ColumnFarmerPrice), rowNum, models.ColumnFarmerPrice, logger),
			CTPurchasePrice: parseMoney(cell(models.ColumnCTPurchasePrice), rowNum, models.ColumnCTPurchasePrice, logger),
			CTSKUProfit:     parseMoney(cell(models.ColumnCTSKUProfit), rowNum, models.ColumnCTSKUProfit, logger),
			MinProfitPct:    engine.NormalizePercent(cell(models.ColumnMinProfit)),
		})
	}

	return rows, nil
}

func mapHeaders(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var missing []string
	for _, required := range models.RequiredColumns {
		if _, ok := columns[strings.ToLower(required)]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("catalog is missing required columns: %s", strings.Join(missing, ", "))
	}

	return columns, nil
}

// parseMoney reads a monetary cell. Currency symbols and thousands separators
// are tolerated; an empty or unparseable cell defaults to 0 with a warning so
// the SKU stays available to lookups.
func parseMoney(raw string, rowNum int, column string, logger *logrus.Entry) float64 {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "₹")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		logger.WithFields(logrus.Fields{
			"row":    rowNum,
			"column": column,
			"value":  raw,
		}).Warn("Malformed numeric cell in catalog, defaulting to 0")
		return 0
	}
	return f
}
