// Command import loads transaction and attachment records from JSON files
// into the record store, one batch per file.
//
// Usage:
//
//	import -transactions txs.json -attachments atts.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/ledgerlink/reconcile-backend/internal/domain/records"
	"github.com/ledgerlink/reconcile-backend/internal/infrastructure/config"
	"github.com/ledgerlink/reconcile-backend/internal/infrastructure/logging"
	"github.com/ledgerlink/reconcile-backend/internal/infrastructure/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	txPath := flag.String("transactions", "", "path to a JSON array of transactions")
	attPath := flag.String("attachments", "", "path to a JSON array of attachments")
	flag.Parse()

	if *txPath == "" && *attPath == "" {
		fmt.Fprintln(os.Stderr, "nothing to import: provide -transactions and/or -attachments")
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.LoadOrEnvWithPath(*configPath)
	logger := logging.NewComponentLogger(cfg.Observability.Logging, "import")

	repo, err := buildRepository(cfg.Storage)
	if err != nil {
		logger.Error("failed to initialize storage", "driver", cfg.Storage.Driver, "error", err)
		os.Exit(1)
	}
	defer repo.Close()

	if *txPath != "" {
		var txs []*records.Transaction
		if err := readJSONFile(*txPath, &txs); err != nil {
			logger.Error("failed to read transactions", "path", *txPath, "error", err)
			os.Exit(1)
		}

		batchID := uuid.NewString()
		if err := repo.SaveTransactions(batchID, txs); err != nil {
			logger.Error("failed to save transactions", "error", err)
			os.Exit(1)
		}
		logger.Info("imported transactions", "count", len(txs), "batch_id", batchID)
	}

	if *attPath != "" {
		var atts []*records.Attachment
		if err := readJSONFile(*attPath, &atts); err != nil {
			logger.Error("failed to read attachments", "path", *attPath, "error", err)
			os.Exit(1)
		}

		batchID := uuid.NewString()
		if err := repo.SaveAttachments(batchID, atts); err != nil {
			logger.Error("failed to save attachments", "error", err)
			os.Exit(1)
		}
		logger.Info("imported attachments", "count", len(atts), "batch_id", batchID)
	}

	stats, err := repo.Stats()
	if err == nil {
		logger.Info("store totals",
			"transactions", stats.TransactionCount,
			"attachments", stats.AttachmentCount,
			"batches", stats.ImportBatchCount)
	}
}

func buildRepository(cfg config.StorageConfig) (storage.Repository, error) {
	if cfg.Driver == "postgres" {
		return storage.NewPostgresStorage(cfg.PostgresDSN)
	}
	return storage.NewStorage(cfg.DatabasePath)
}

func readJSONFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
