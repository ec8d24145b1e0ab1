package postgres

import (
	"fmt"
	"net"
	"strconv"
	"time"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"

	"github.com/jhoicas/almacen-ledger/pkg/config"
	"github.com/jhoicas/almacen-ledger/pkg/logger"
)

const embeddedPassword = "postgres"

// Embedded PostgreSQL local levantado por el propio proceso (DB_EMBEDDED=true).
type Embedded struct {
	db  *embeddedpostgres.EmbeddedPostgres
	log *logger.Logger
}

// StartEmbedded arranca PostgreSQL en cfg.EmbeddedPort con datos en cfg.EmbeddedData y devuelve
// la configuración de conexión a usar en NewPool.
func StartEmbedded(cfg config.DBConfig, log *logger.Logger) (*Embedded, config.DBConfig, error) {
	if portInUse(cfg.EmbeddedPort) {
		return nil, cfg, fmt.Errorf("embedded postgres: puerto %d en uso", cfg.EmbeddedPort)
	}

	user := cfg.User
	if user == "" {
		user = "postgres"
	}
	pgCfg := embeddedpostgres.DefaultConfig().
		DataPath(cfg.EmbeddedData).
		Port(uint32(cfg.EmbeddedPort)).
		Database(cfg.DBName).
		Username(user).
		Password(embeddedPassword).
		StartTimeout(45 * time.Second).
		Logger(log.Named("embedded-postgres").Zerolog())

	db := embeddedpostgres.NewDatabase(pgCfg)
	log.Info().Int("port", cfg.EmbeddedPort).Str("data", cfg.EmbeddedData).Msg("iniciando postgres embebido")
	if err := db.Start(); err != nil {
		return nil, cfg, fmt.Errorf("start embedded postgres: %w", err)
	}

	conn := cfg
	conn.DatabaseURL = ""
	conn.Host = "localhost"
	conn.Port = cfg.EmbeddedPort
	conn.User = user
	conn.Password = embeddedPassword
	conn.SSLMode = "disable"
	return &Embedded{db: db, log: log}, conn, nil
}

// Stop detiene el proceso embebido.
func (e *Embedded) Stop() error {
	if e == nil || e.db == nil {
		return nil
	}
	if err := e.db.Stop(); err != nil {
		return fmt.Errorf("stop embedded postgres: %w", err)
	}
	e.log.Info().Msg("postgres embebido detenido")
	return nil
}

func portInUse(port int) bool {
	ln, err := net.Listen("tcp", net.JoinHostPort("127.0.0.1", strconv.Itoa(port)))
	if err != nil {
		return true
	}
	_ = ln.Close()
	return false
}
