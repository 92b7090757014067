package database

import "testing"

// Register membandingkan error dengan gorm.ErrDuplicatedKey; tanpa
// TranslateError, unique violation dari pgx tetap *pgconn.PgError dan
// email duplikat jatuh ke 500, bukan 409.
func TestGormConfigTranslatesDriverErrors(t *testing.T) {
	cfg := gormConfig()
	if !cfg.TranslateError {
		t.Fatal("TranslateError harus aktif supaya gorm.ErrDuplicatedKey bisa di-match handler")
	}
}
