package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/juliabase/juliabase/internal/crawler"
	"github.com/juliabase/juliabase/internal/pkg/logger"
	"github.com/juliabase/juliabase/pkg/remote"

	"github.com/spf13/cobra"
)

// CrawlerCommandHandler encapsulates logic for importing instrument data
// files via CLI.
type CrawlerCommandHandler struct {
	scanner *crawler.Scanner
	watcher *crawler.Watcher
	logger  logger.Logger
}

// NewCrawlerCommandHandler initializes and returns a CrawlerCommandHandler instance with
// configured logger, scanner and watcher.
func NewCrawlerCommandHandler() (*CrawlerCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	scanner, err := crawler.NewScanner(loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create scanner: %w", err)
	}

	watcher, err := crawler.NewWatcher(loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	return &CrawlerCommandHandler{
		scanner: scanner,
		watcher: watcher,
		logger:  loggerInstance,
	}, nil
}

// importFile maps a data file to its samples by name and attaches a process
// for it. The file name carries the sample names.
func (commandHandler *CrawlerCommandHandler) importFile(ctx context.Context, client *remote.Client, path, kind string) error {
	names := remote.ExtractSampleNames(filepath.Base(path))
	if len(names) == 0 {
		return fmt.Errorf("no sample names in file name %s", filepath.Base(path))
	}

	var sampleIDs []string
	for _, name := range names {
		sample, err := client.GetSampleByName(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to resolve sample %s: %w", name, err)
		}
		sampleIDs = append(sampleIDs, sample.ID)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	timestamp := info.ModTime()

	newProcess := &remote.NewProcess{
		Kind:      kind,
		Timestamp: &timestamp,
		Comments:  fmt.Sprintf("Imported from %s", filepath.Base(path)),
		SampleIDs: sampleIDs,
	}

	if _, err := client.CreateProcess(ctx, newProcess); err != nil {
		return fmt.Errorf("failed to import %s: %w", path, err)
	}
	return nil
}

// crawlOnce scans for changed files and imports each one, re-queueing
// failures for the next run.
func (commandHandler *CrawlerCommandHandler) crawlOnce(ctx context.Context, client *remote.Client, root, stateFile, pattern, kind string) error {
	changed, err := commandHandler.scanner.FindChangedFiles(root, stateFile, pattern)
	if err != nil {
		return err
	}

	var deferred []string
	imported := 0
	for _, path := range changed {
		if err := commandHandler.importFile(ctx, client, path, kind); err != nil {
			commandHandler.logger.Warn(err)
			deferred = append(deferred, path)
			continue
		}
		imported++
	}

	if len(deferred) > 0 {
		if err := commandHandler.scanner.DeferFiles(stateFile, deferred); err != nil {
			return err
		}
	}

	commandHandler.logger.Info("Imported ", imported, " files, deferred ", len(deferred))
	return nil
}

// CrawlCmd imports changed instrument data files as processes
func (commandHandler *CrawlerCommandHandler) CrawlCmd(cmd *cobra.Command, _ []string) {
	ctx := context.Background()

	root, err := cmd.Flags().GetString("data-dir")
	if err != nil {
		commandHandler.logger.Error("invalid data-dir flag ", err)
		return
	}
	stateFile, err := cmd.Flags().GetString("state-file")
	if err != nil {
		commandHandler.logger.Error("invalid state-file flag ", err)
		return
	}
	pattern, err := cmd.Flags().GetString("pattern")
	if err != nil {
		commandHandler.logger.Error("invalid pattern flag ", err)
		return
	}
	kind, err := cmd.Flags().GetString("kind")
	if err != nil {
		commandHandler.logger.Error("invalid kind flag ", err)
		return
	}
	watch, err := cmd.Flags().GetBool("watch")
	if err != nil {
		commandHandler.logger.Error("invalid watch flag ", err)
		return
	}

	if stateFile == "" {
		stateFile = filepath.Join(root, ".crawler-state.json")
	}

	lock, err := crawler.AcquirePIDLock(stateFile + ".pid")
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	defer func() {
		if err := lock.Release(); err != nil {
			commandHandler.logger.Warn(err)
		}
	}()

	client, err := newRemoteClient(ctx, cmd)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	if err := commandHandler.crawlOnce(ctx, client, root, stateFile, pattern, kind); err != nil {
		commandHandler.logger.Error(err)
		return
	}

	if !watch {
		return
	}

	watchCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Events only trigger a rescan. The scanner's state file stays the
	// single source of truth, so a burst of writes to one file is
	// imported once.
	err = commandHandler.watcher.Watch(watchCtx, root, pattern, func(string) {
		time.Sleep(time.Second)
		if err := commandHandler.crawlOnce(watchCtx, client, root, stateFile, pattern, kind); err != nil {
			commandHandler.logger.Warn(err)
		}
	})
	if err != nil && watchCtx.Err() == nil {
		commandHandler.logger.Error(err)
	}
}

// InitCrawlerCommands registers crawler-related commands
func InitCrawlerCommands(rootCmd *cobra.Command) error {
	handler, err := NewCrawlerCommandHandler()

	if err != nil {
		return fmt.Errorf("failed to create crawler command handler %w", err)
	}

	var crawlCmd = &cobra.Command{
		Use:   "crawl",
		Short: "Import changed instrument data files as processes",
		Run:   handler.CrawlCmd,
	}
	crawlCmd.Flags().StringP("data-dir", "", "", "Directory holding instrument data files")
	crawlCmd.Flags().StringP("state-file", "", "", "Path to the crawler state file (default <data-dir>/.crawler-state.json)")
	crawlCmd.Flags().StringP("pattern", "", "", "Regular expression on file base names (empty matches everything)")
	crawlCmd.Flags().StringP("kind", "", "measurement", "Process kind recorded for imported files")
	crawlCmd.Flags().BoolP("watch", "", false, "Keep running and import files as they appear")
	registerServerFlag(crawlCmd)
	rootCmd.AddCommand(crawlCmd)

	return nil
}
