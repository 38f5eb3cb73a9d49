package app

import (
	"log"

	"infralab/internal/gateway/config"
	"infralab/internal/gateway/repository/archive"
	"infralab/internal/ledger"
)

// initArchive returns the S3 store when configured. A failing S3 setup falls
// back to memory so that proposals still render.
func initArchive(cfg *config.Config, logger *log.Logger) (archive.Store, error) {
	if cfg.Archive.Enabled {
		s3Store, err := archive.NewS3Store(archive.S3Config{
			Endpoint:  cfg.Archive.Endpoint,
			Region:    cfg.Archive.Region,
			AccessKey: cfg.Archive.AccessKey,
			SecretKey: cfg.Archive.SecretKey,
			Bucket:    cfg.Archive.Bucket,
			UseSSL:    cfg.Archive.UseSSL,
		})
		if err == nil {
			logger.Printf("proposal archive: s3 bucket=%s endpoint=%s", cfg.Archive.Bucket, cfg.Archive.Endpoint)
			return s3Store, nil
		}
		logger.Printf("proposal archive: s3 unavailable, using memory: %v", err)
	}
	logger.Printf("proposal archive: memory")
	return archive.NewMemoryStore(archive.DefaultMemoryCapacity)
}

func initLedger(cfg *config.Config, logger *log.Logger) ledger.Ledger {
	l, err := ledger.Open(cfg.LedgerDSN)
	if err != nil {
		logger.Printf("generation ledger: postgres unavailable, using memory: %v", err)
		return l
	}
	if cfg.LedgerDSN != "" {
		logger.Printf("generation ledger: postgres")
	} else {
		logger.Printf("generation ledger: memory")
	}
	return l
}
