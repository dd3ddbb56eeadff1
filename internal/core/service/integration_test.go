package service

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/rl1809/inventory-ledger/internal/adapter/storage"
)

type testEnv struct {
	redis   *redis.Client
	mysql   *sql.DB
	cache   *storage.RedisAdapter
	db      *storage.MySQLAdapter
	cleanup func()
}

func setupTestEnv(t *testing.T) *testEnv {
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	mysqlDSN := os.Getenv("MYSQL_DSN")
	if mysqlDSN == "" {
		mysqlDSN = "root:root@tcp(localhost:3306)/inventory?parseTime=true"
	}

	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	db, err := sql.Open("mysql", mysqlDSN)
	if err != nil {
		t.Skipf("MySQL not available: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Skipf("MySQL not available: %v", err)
	}

	mysqlAdapter := storage.NewMySQLAdapter(db)
	if err := mysqlAdapter.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	key := "integration:" + uuid.NewString()
	return &testEnv{
		redis: rdb,
		mysql: db,
		cache: storage.NewRedisAdapter(rdb, key),
		db:    mysqlAdapter,
		cleanup: func() {
			rdb.Del(context.Background(), key, key+":order")
			rdb.Close()
			db.Close()
		},
	}
}

func TestIntegration_MirrorTracksLedger(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	ctx := context.Background()
	svc := NewInventoryService(storage.NewFileAdapter(), WithMirror(env.cache))

	svc.Add("apple", 10)
	svc.Add("banana", 2)
	svc.Remove("apple", 3)
	svc.Remove("banana", 5)
	svc.Remove("orange", 1)

	mirrored, err := env.cache.LoadStock(ctx)
	if err != nil {
		t.Fatalf("LoadStock failed: %v", err)
	}
	if !mirrored.Equal(svc.Stock()) {
		t.Errorf("expected mirror %v, got %v", svc.Stock().Items(), mirrored.Items())
	}
}

func TestIntegration_ExportImportAcrossBackends(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "inventory.json")

	src := NewInventoryService(storage.NewFileAdapter())
	src.Add("apple", 7)
	src.Add("banana", 2)
	if err := src.Save(path); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := src.Export(ctx, env.db); err != nil {
		t.Fatalf("export to mysql failed: %v", err)
	}

	// mysql -> redis through a second session
	relay := NewInventoryService(storage.NewFileAdapter())
	if err := relay.Import(ctx, env.db); err != nil {
		t.Fatalf("import from mysql failed: %v", err)
	}
	if err := relay.Export(ctx, env.cache); err != nil {
		t.Fatalf("export to redis failed: %v", err)
	}

	dst := NewInventoryService(storage.NewFileAdapter())
	if err := dst.Import(ctx, env.cache); err != nil {
		t.Fatalf("import from redis failed: %v", err)
	}
	if !dst.Stock().Equal(src.Stock()) {
		t.Errorf("expected %v, got %v", src.Stock().Items(), dst.Stock().Items())
	}

	// Cleanup
	env.mysql.ExecContext(ctx, `DELETE FROM stock`)
}

func TestIntegration_ArchiveSession(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	ctx := context.Background()
	svc := NewInventoryService(storage.NewFileAdapter())
	svc.Add("apple", 10)
	svc.Remove("apple", 3)

	if err := svc.Archive(ctx, env.db); err != nil {
		t.Fatalf("archive failed: %v", err)
	}

	entries, err := env.db.ListActivity(ctx, svc.SessionID().String())
	if err != nil {
		t.Fatalf("ListActivity failed: %v", err)
	}
	if len(entries) != svc.Log().Len() {
		t.Errorf("expected %d archived entries, got %d", svc.Log().Len(), len(entries))
	}

	// Cleanup
	env.mysql.ExecContext(ctx, `DELETE FROM activity_log WHERE session_id = ?`, svc.SessionID().String())
}
