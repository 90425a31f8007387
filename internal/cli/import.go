package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/healthdash/internal/models"
	"github.com/terraincognita07/healthdash/internal/services"
	"go.uber.org/zap"
)

type remoteRecordLister interface {
	List(ctx context.Context, userID uint, kind models.RecordKind) ([]models.Record, error)
}

type recordImporter interface {
	Import(userID uint, record models.Record) (services.ImportOutcome, error)
}

type importResult struct {
	Imported map[models.RecordKind]int
	Skipped  map[models.RecordKind]int
	// Conflicts counts ids already held by another local user.
	Conflicts map[models.RecordKind]int
}

func (result importResult) totals() (int, int, int) {
	return sumCounts(result.Imported), sumCounts(result.Skipped), sumCounts(result.Conflicts)
}

func sumCounts(counts map[models.RecordKind]int) int {
	total := 0
	for _, count := range counts {
		total += count
	}
	return total
}

func newImportCommand(options *rootOptions) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Copy every Living Apps record into the local database",
		Long: `import reads all four Living Apps record collections and stores them
for the given local account. Records whose id already exists locally are
skipped, so the command can be repeated. Ids already held by another local
user are reported as conflicts and left untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadRuntime(options)
			if err != nil {
				return err
			}
			defer rt.close()

			userID, userEmail, err := rt.findUser(services.NewAuthService(rt.repositories.Users), email)
			if err != nil {
				return err
			}

			result, err := importRecords(cmd.Context(), rt.livingAppsClient(), services.NewLocalRecordStore(rt.repositories.Records), userID, rt.logger)
			if err != nil {
				return err
			}

			imported, skipped, conflicts := result.totals()
			options.printf("Imported %d records for %s (%d already present)\n", imported, userEmail, skipped)
			for _, kind := range models.RecordKinds() {
				options.printf("  %-10s %d new, %d skipped, %d owned by another user\n", kind, result.Imported[kind], result.Skipped[kind], result.Conflicts[kind])
			}
			if conflicts > 0 {
				options.printf("%d records were not imported because another local user already holds their ids\n", conflicts)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "local account that receives the records")
	return cmd
}

// importRecords copies every remote record into target for userID. It stops
// at the first failure; records stored before it stay imported.
func importRecords(ctx context.Context, source remoteRecordLister, target recordImporter, userID uint, logger *zap.Logger) (importResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	result := importResult{
		Imported:  map[models.RecordKind]int{},
		Skipped:   map[models.RecordKind]int{},
		Conflicts: map[models.RecordKind]int{},
	}

	for _, kind := range models.RecordKinds() {
		records, err := source.List(ctx, userID, kind)
		if err != nil {
			return result, fmt.Errorf("list remote %s records: %w", kind, err)
		}

		for _, record := range records {
			if record.Kind == "" {
				record.Kind = kind
			}
			outcome, err := target.Import(userID, record)
			if err != nil {
				return result, fmt.Errorf("import %s record %s: %w", kind, record.ID, err)
			}
			switch outcome {
			case services.ImportStored:
				result.Imported[kind]++
			case services.ImportPresent:
				result.Skipped[kind]++
			case services.ImportConflict:
				result.Conflicts[kind]++
			}
		}

		logger.Info("imported record kind",
			zap.String("kind", string(kind)),
			zap.Int("remote", len(records)),
			zap.Int("imported", result.Imported[kind]),
			zap.Int("skipped", result.Skipped[kind]),
			zap.Int("conflicts", result.Conflicts[kind]),
		)
	}
	return result, nil
}
