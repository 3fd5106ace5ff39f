package configs

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
)

func OpenConnection() (*gorm.DB, error) {

	dialector, err := Dialector(LoadENV)
	if err != nil {
		return nil, err
	}

	maxRetries := 10
	retryDelay := 5 * time.Second

	for i := 0; i < maxRetries; i++ {
		log.Printf("Attempting to connect to %s database (Attempt %d/%d)", LoadENV.DBDriver, i+1, maxRetries)
		db, err := gorm.Open(dialector, &gorm.Config{})
		if err == nil {

			sqlDB, pingErr := db.DB()
			if pingErr == nil {
				pingErr = sqlDB.Ping()
				if pingErr == nil {
					log.Println("✅ Database connection successful!")
					return db, nil
				}
			}

			log.Printf("❌ Failed to ping database: %v. Retrying in %v...", pingErr, retryDelay)
		} else {
			log.Printf("❌ Failed to open GORM connection: %v. Retrying in %v...", err, retryDelay)
		}

		time.Sleep(retryDelay)
	}

	return nil, fmt.Errorf("failed to connect to the %s database %s@%s after %d retries", LoadENV.DBDriver, LoadENV.DBName, LoadENV.DBHost, maxRetries)
}
