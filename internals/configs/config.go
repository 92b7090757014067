package configs

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	JWTSecret        string
	JWTRefreshSecret string

	// 💰 Iuran bulanan default (dipakai kalau jamaah belum punya tarif sendiri)
	IuranBulananDefault float64
)

// Tarif rumah: 50.00 per bulan kecuali di-override lewat ENV / per-jamaah.
const iuranBulananFallback = 50.00

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	JWTRefreshSecret = GetEnv("JWT_REFRESH_SECRET")

	IuranBulananDefault = iuranBulananFallback
	if v := GetEnv("IURAN_BULANAN_DEFAULT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			IuranBulananDefault = f
		} else {
			log.Printf("⚠️ IURAN_BULANAN_DEFAULT tidak valid (%q), pakai %.2f", v, iuranBulananFallback)
		}
	}

	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET belum diset!")
	} else {
		log.Println("✅ JWT_SECRET berhasil dimuat.")
	}
}

func GetEnv(key string) string {
	return os.Getenv(key)
}

func GetEnvOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
