package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/zemlex/estate-catalog/internal/config"
	"github.com/zemlex/estate-catalog/internal/models"
)

// TestConnectMySQL spins up a real MySQL container and runs the full
// migration against it. Gated behind CATALOG_IT=1 because it needs a
// Docker daemon.
func TestConnectMySQL(t *testing.T) {
	if os.Getenv("CATALOG_IT") != "1" {
		t.Skip("set CATALOG_IT=1 to run container-backed integration tests")
	}

	ctx := context.Background()

	tcpPort, err := nat.NewPort("tcp", "3306")
	if err != nil {
		t.Fatalf("Failed to create DB port: %v", err)
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mysql:8.4",
			ExposedPorts: []string{string(tcpPort)},
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": "root",
				"MYSQL_DATABASE":      "catalog_test",
			},
			WaitingFor: wait.ForListeningPort(tcpPort).WithStartupTimeout(90 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start MySQL container: %v", err)
	}
	defer func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	}()

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}
	mappedPort, err := container.MappedPort(ctx, tcpPort)
	if err != nil {
		t.Fatalf("Failed to get mapped port: %v", err)
	}

	// The listening port opens before mysqld accepts credentials; poll with
	// the raw driver until it does.
	dsn := fmt.Sprintf("root:root@tcp(%s:%s)/catalog_test", host, mappedPort.Port())
	waitForMySQL(t, dsn)

	cfg := &config.Config{
		DBType:            "mysql",
		DBHost:            host,
		DBPort:            mappedPort.Port(),
		DBDatabase:        "catalog_test",
		DBUser:            "root",
		DBPassword:        "root",
		DBConnectionLimit: 4,
	}

	db, err := Connect(cfg)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer Close(db)

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	// Round-trip one row through the JSON column on the real dialect.
	pt := models.PropertyType{
		Name:            "Дом",
		Slug:            "dom",
		AttributeSchema: []byte(`{"area_sqm": {"type": "number"}}`),
	}
	if err := db.Create(&pt).Error; err != nil {
		t.Fatalf("Failed to insert property type: %v", err)
	}

	var loaded models.PropertyType
	if err := db.First(&loaded, pt.ID).Error; err != nil {
		t.Fatalf("Failed to load property type: %v", err)
	}
	if len(loaded.AttributeSchema) == 0 {
		t.Error("attribute schema not round-tripped")
	}
}

func waitForMySQL(t *testing.T, dsn string) {
	t.Helper()
	deadline := time.Now().Add(60 * time.Second)
	for time.Now().Before(deadline) {
		conn, err := sql.Open("mysql", dsn)
		if err == nil {
			if err := conn.Ping(); err == nil {
				conn.Close()
				return
			}
			conn.Close()
		}
		time.Sleep(time.Second)
	}
	t.Fatal("MySQL did not become ready in time")
}
