package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	listModel "jamaahku_backend/internals/features/donations/lists/model"
	pledgeModel "jamaahku_backend/internals/features/donations/pledges/model"
	duesModel "jamaahku_backend/internals/features/finance/dues/model"
	gatewayModel "jamaahku_backend/internals/features/finance/gateway/model"
	memberModel "jamaahku_backend/internals/features/members/model"
	userModel "jamaahku_backend/internals/features/users/auth/model"
)

var DB *gorm.DB

// gormConfig: TranslateError wajib aktif, handler membandingkan error
// dengan gorm.ErrDuplicatedKey (mis. email unik saat register).
func gormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
	}
}

func ConnectDB() {
	log.Println("🔌 Koneksi ke PostgreSQL (Supabase)...")

	// ✅ Gunakan URL/DSN lengkap + statement_timeout
	// Catatan: kalau pakai PgBouncer, ganti host/port ke port PgBouncer (mis. 6543) dan biarkan PreferSimpleProtocol=true
	sslmode := getenv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=jamaahku&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // 👍 cocok untuk PgBouncer (transaction pooling)
	}), gormConfig())
	if err != nil {
		log.Fatalf("❌ Gagal konek DB: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	// ⚖️ Sesuaikan dengan limit Supabase/PgBouncer
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func WarmUpQueries() {
	// jalankan ringan supaya koneksi/pool keisi & siap
	go func() {
		time.Sleep(500 * time.Millisecond) // beri waktu server naik
		if err := ping(); err != nil {
			log.Printf("warm-up ping err: %v", err)
		}
	}()
}

func ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// AutoMigrate menyelaraskan skema (opsional, RUN_MIGRATIONS=true).
// Produksi pakai migrasi terkelola; ini untuk dev/bootstrap.
func AutoMigrate() {
	if err := DB.AutoMigrate(
		&userModel.User{},
		&memberModel.Member{},
		&listModel.DonationList{},
		&listModel.DonationItem{},
		&pledgeModel.DonationPledge{},
		&duesModel.DuesPayment{},
		&duesModel.Expense{},
		&gatewayModel.PaymentGatewayEvent{},
	); err != nil {
		log.Fatalf("❌ Gagal migrasi skema: %v", err)
	}
	log.Println("✅ Skema ter-migrasi.")
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
