package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Rakhulsr/go-catalog-admin/app/configs"
	"github.com/Rakhulsr/go-catalog-admin/app/db/seeders"
	"github.com/Rakhulsr/go-catalog-admin/app/models/migrations"
	"github.com/Rakhulsr/go-catalog-admin/app/repositories"
	"github.com/Rakhulsr/go-catalog-admin/app/services"
	"github.com/urfave/cli/v3"
)

func RunCli() {
	cmd := &cli.Command{
		Name:  "catalog-admin",
		Usage: "Catalog back-office maintenance commands",
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "Run database migration",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection()
					if err != nil {
						return err
					}
					if err := migrations.AutoMigrate(db); err != nil {
						return err
					}
					log.Println("✅ Migration complete")
					return nil
				},
			},
			{
				Name:  "seed",
				Usage: "Fill the catalog with fake categories, brands and products",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection()
					if err != nil {
						return err
					}
					if err := seeders.DBSeed(db.WithContext(ctx)); err != nil {
						return err
					}
					log.Println("✅ Seeding complete")
					return nil
				},
			},
			{
				Name:  "generate-keys",
				Usage: "Generate cookie and CSRF keys in .env format",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "out",
						Value: ".env.keys",
						Usage: "file the generated keys are written to",
					},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					out := c.String("out")
					if err := configs.WriteSessionKeys(out); err != nil {
						return err
					}
					log.Printf("✅ Keys written to %s, copy them into .env", out)
					return nil
				},
			},
			{
				Name:  "create-admin",
				Usage: "Create a back-office administrator",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "password", Required: true},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection()
					if err != nil {
						return err
					}
					auth := services.NewAuthService(repositories.NewUserRepository(db))
					user, err := auth.CreateAdmin(ctx, c.String("name"), c.String("email"), c.String("password"))
					if err != nil {
						return err
					}
					log.Printf("✅ Admin %s created with id %d", user.Email, user.ID)
					return nil
				},
			},
			{
				Name:  "purge-temp",
				Usage: "Delete staged uploads that were never attached to a product or category",
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:  "older-than",
						Value: 24 * time.Hour,
						Usage: "minimum age of the temp images to delete",
					},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					olderThan := c.Duration("older-than")
					if olderThan <= 0 {
						return fmt.Errorf("--older-than must be positive, got %s", olderThan)
					}

					db, err := configs.OpenConnection()
					if err != nil {
						return err
					}
					images := services.NewImageService(configs.LoadENV.PublicDir)
					temps := services.NewTempImageService(repositories.NewTempImageRepository(db), images)
					purged, err := temps.Purge(ctx, olderThan)
					if err != nil {
						return err
					}
					log.Printf("✅ Purged %d temp images older than %s", purged, olderThan)
					return nil
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
