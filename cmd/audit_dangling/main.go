// Command audit_dangling lists selections whose food template has been
// deleted and, with -purge, removes them and records the run.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/yungbote/schoolmeal-backend/internal/app"
	"github.com/yungbote/schoolmeal-backend/internal/data/repos"
	"github.com/yungbote/schoolmeal-backend/internal/platform/authz"
	"github.com/yungbote/schoolmeal-backend/internal/platform/ctxutil"
	"github.com/yungbote/schoolmeal-backend/internal/services"
)

// maintenanceActor is recorded on purge runs started without -actor.
var maintenanceActor = uuid.NewSHA1(uuid.NameSpaceOID, []byte("schoolmeal/audit_dangling"))

func main() {
	purge := flag.Bool("purge", false, "delete dangling selections and write an audit record")
	actorFlag := flag.String("actor", "", "user id recorded as the purge actor")
	flag.Parse()

	actorID := maintenanceActor
	if *actorFlag != "" {
		id, err := uuid.Parse(*actorFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid -actor: %v\n", err)
			os.Exit(2)
		}
		actorID = id
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, actorID, *purge); err != nil {
		fmt.Fprintf(os.Stderr, "audit_dangling: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, actorID uuid.UUID, purge bool) error {
	log, err := app.NewLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	cfg := app.LoadConfig(log)
	dbs, err := app.OpenDB(log, cfg)
	if err != nil {
		return err
	}
	defer dbs.Close()

	theDB := dbs.DB()
	audit := services.NewAuditService(theDB, log, repos.NewSelectionRepo(theDB, log), repos.NewAuditPurgeRepo(theDB, log))
	ctx = ctxutil.WithRequestData(ctx, &ctxutil.RequestData{UserID: actorID, Role: authz.RoleOrganisation})

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	if !purge {
		rows, err := audit.ListDangling(ctx)
		if err != nil {
			return err
		}
		log.Info("dangling selections found", "count", len(rows))
		return enc.Encode(map[string]any{"count": len(rows), "dangling": rows})
	}
	res, err := audit.PurgeDangling(ctx)
	if err != nil {
		return err
	}
	return enc.Encode(res)
}
