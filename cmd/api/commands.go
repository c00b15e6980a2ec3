package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	dbpkg "github.com/pranamithra/scheduler/internal/db"
	"github.com/pranamithra/scheduler/internal/handlers"
	"github.com/pranamithra/scheduler/internal/models"
	ucSchedule "github.com/pranamithra/scheduler/internal/usecase/schedule"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}

			ctx := context.Background()
			db, err := dbpkg.NewDB(ctx, cfg, logger)
			if err != nil {
				return err
			}
			if err := dbpkg.Migrate(ctx, db); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			logger.Info().Msg("migrations applied")
			return nil
		},
	}
}

// slotsCmd previews slots offline, e.g.
//
//	api slots --login 09:00 --logout 13:00 --duration 20
func slotsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Print the slots generated for a working window",
		RunE: func(cmd *cobra.Command, args []string) error {
			login, _ := cmd.Flags().GetString("login")
			logout, _ := cmd.Flags().GetString("logout")
			duration, _ := cmd.Flags().GetInt("duration")

			slots, err := ucSchedule.NewPreviewSlots().Execute(ucSchedule.PreviewInput{
				LoginTime:       login,
				LogoutTime:      logout,
				DurationMinutes: duration,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, s := range slots {
				fmt.Fprintln(out, s)
			}
			return nil
		},
	}
	cmd.Flags().String("login", "", "Start of the working window (HH:MM)")
	cmd.Flags().String("logout", "", "End of the working window (HH:MM)")
	cmd.Flags().Int("duration", 10, "Slot duration in minutes (10, 20 or 30)")
	return cmd
}

func adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage admin accounts",
	}

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create an admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			name, _ := cmd.Flags().GetString("name")
			isMain, _ := cmd.Flags().GetBool("main")
			verifyDoctor, _ := cmd.Flags().GetBool("verify-doctor")
			doctorDB, _ := cmd.Flags().GetBool("doctor-db")
			customerDB, _ := cmd.Flags().GetBool("customer-db")

			email = strings.ToLower(strings.TrimSpace(email))
			if email == "" || len(password) < 6 {
				return errors.New("--email and a --password of at least 6 characters are required")
			}

			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}

			ctx := context.Background()
			db, err := dbpkg.NewDB(ctx, cfg, logger)
			if err != nil {
				return err
			}

			hashed, err := handlers.HashPassword(password)
			if err != nil {
				return err
			}

			admin := models.Admin{
				FullName:     name,
				Email:        email,
				PasswordHash: hashed,

				Main:             isMain,
				CanVerifyDoctor:  verifyDoctor,
				CanManageDoctors: doctorDB,
				CanViewCustomers: customerDB,
			}
			if err := db.WithContext(ctx).Create(&admin).Error; err != nil {
				return fmt.Errorf("create admin: %w", err)
			}

			logger.Info().
				Uint("id", admin.ID).
				Str("email", admin.Email).
				Bool("main", admin.Main).
				Msg("admin created")
			return nil
		},
	}
	createCmd.Flags().String("email", "", "Admin email")
	createCmd.Flags().String("password", "", "Admin password")
	createCmd.Flags().String("name", "Administrator", "Display name")
	createCmd.Flags().Bool("main", false, "Grant every permission")
	createCmd.Flags().Bool("verify-doctor", false, "May change doctor verification status")
	createCmd.Flags().Bool("doctor-db", false, "May list and delete doctors")
	createCmd.Flags().Bool("customer-db", false, "May list customers")

	cmd.AddCommand(createCmd)
	return cmd
}
