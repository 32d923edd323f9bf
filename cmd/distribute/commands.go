package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/jhoicas/stock-distribution/pkg/jwt"
)

var migrateCmd = &cli.Command{
	Name:  "migrate",
	Usage: "Aplica el esquema de base de datos",
	Action: func(ctx *cli.Context) error {
		e, err := openEnv(ctx.Context)
		if err != nil {
			return err
		}
		defer e.close()

		applied, err := e.backend.Migrate(ctx.Context)
		if err != nil {
			return err
		}
		e.log.Info().Strs("applied", applied).Str("driver", e.backend.Driver).Msg("migraciones aplicadas")
		return nil
	},
}

var seedCmd = &cli.Command{
	Name:  "seed",
	Usage: "Carga productos y sucursales de demostración (idempotente)",
	Action: func(ctx *cli.Context) error {
		e, err := openEnv(ctx.Context)
		if err != nil {
			return err
		}
		defer e.close()

		res, err := e.seedUseCase().SeedDemo(ctx.Context)
		if err != nil {
			return err
		}
		return writeJSON(ctx.App.Writer, res)
	},
}

var runCmd = &cli.Command{
	Name:    "run",
	Usage:   "Ejecuta una corrida de distribución",
	Aliases: []string{"r"},
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "product",
			Usage: "distribuir solo este producto (ID)",
		},
		&cli.BoolFlag{
			Name:  "seed",
			Usage: "cargar datos de demostración antes de distribuir (útil con STORE_DRIVER=memory)",
		},
	},
	Action: func(ctx *cli.Context) error {
		e, err := openEnv(ctx.Context)
		if err != nil {
			return err
		}
		defer e.close()

		if ctx.Bool("seed") {
			if _, err := e.seedUseCase().SeedDemo(ctx.Context); err != nil {
				return err
			}
		}

		uc := e.distributionUseCase()
		if productID := ctx.String("product"); productID != "" {
			out, err := uc.RunProduct(ctx.Context, productID)
			if err != nil {
				return err
			}
			return writeJSON(ctx.App.Writer, out)
		}

		resp, err := uc.Run(ctx.Context)
		if resp != nil {
			if werr := writeJSON(ctx.App.Writer, resp); werr != nil {
				return werr
			}
		}
		return err
	},
}

var reportCmd = &cli.Command{
	Name:  "report",
	Usage: "Imprime el reporte de stock por sucursal",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "pdf",
			Usage: "escribir el reporte en PDF a este archivo",
		},
	},
	Action: func(ctx *cli.Context) error {
		e, err := openEnv(ctx.Context)
		if err != nil {
			return err
		}
		defer e.close()

		uc := e.reportUseCase()
		if file := ctx.String("pdf"); file != "" {
			pdfBytes, _, err := uc.StockReportPDF(ctx.Context)
			if err != nil {
				return err
			}
			if err := os.WriteFile(file, pdfBytes, 0o644); err != nil {
				return fmt.Errorf("escribir %s: %w", file, err)
			}
			e.log.Info().Str("file", file).Int("bytes", len(pdfBytes)).Msg("reporte PDF generado")
			return nil
		}

		rep, err := uc.StockReport(ctx.Context)
		if err != nil {
			return err
		}
		return writeJSON(ctx.App.Writer, rep)
	},
}

var tokenCmd = &cli.Command{
	Name:  "token",
	Usage: "Emite un JWT para operadores",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "role",
			Required: true,
			Usage:    "admin | bodeguero | vendedor",
		},
		&cli.StringFlag{
			Name:  "user",
			Usage: "ID de usuario (por defecto un UUID nuevo)",
		},
	},
	Action: func(ctx *cli.Context) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}
		role := ctx.String("role")
		switch role {
		case "admin", "bodeguero", "vendedor":
		default:
			return errors.New("invalid role")
		}
		userID := ctx.String("user")
		if userID == "" {
			userID = uuid.NewString()
		}
		tok, err := jwt.Generate(cfg.JWT.Secret, userID, role, cfg.JWT.Issuer, cfg.JWT.Expiration)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(ctx.App.Writer, tok)
		return err
	},
}
