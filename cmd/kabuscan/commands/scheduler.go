package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/moriq/kabuscan/internal/scheduler"
	"github.com/moriq/kabuscan/internal/scheduler/jobs"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "スケジューラーデーモン起動",
	Long: `スケジューラーを起動し、定期ジョブを実行します。

登録されるジョブ:
- daily_rescan: 平日16:00 (大引け後の全銘柄リスキャン)

Example:
  go run ./cmd/kabuscan scheduler
  go run ./cmd/kabuscan scheduler --run-now`,
	RunE: runScheduler,
}

var schedulerRunNow bool

func init() {
	rootCmd.AddCommand(schedulerCmd)
	schedulerCmd.Flags().BoolVar(&schedulerRunNow, "run-now", false, "起動直後に一度リスキャンを実行")
}

func runScheduler(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.close()

	sched := scheduler.New(app.logger)
	if err := sched.AddJob(jobs.NewRescanJob(app.service, app.logger)); err != nil {
		return fmt.Errorf("register rescan job: %w", err)
	}

	sched.Start()
	defer sched.Stop()

	if schedulerRunNow {
		if err := sched.RunJob("daily_rescan"); err != nil {
			return fmt.Errorf("run rescan now: %w", err)
		}
	}

	fmt.Println("✅ Scheduler running (daily_rescan @ 平日16:00)")
	fmt.Println("Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	return nil
}
