package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/juliabase/juliabase/internal/pkg/logger"
	"github.com/juliabase/juliabase/pkg/remote"

	"github.com/spf13/cobra"
)

// SampleCommandHandler encapsulates logic for handling sample operations via CLI.
type SampleCommandHandler struct {
	logger logger.Logger
}

// NewSampleCommandHandler initializes and returns a SampleCommandHandler instance with
// a configured logger.
func NewSampleCommandHandler() (*SampleCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	return &SampleCommandHandler{
		logger: loggerInstance,
	}, nil
}

// GetSampleCmd fetches a sample by name and prints its fields
func (commandHandler *SampleCommandHandler) GetSampleCmd(cmd *cobra.Command, _ []string) {
	ctx := context.Background()

	name, err := cmd.Flags().GetString("name")
	if err != nil {
		commandHandler.logger.Error("invalid name flag ", err)
		return
	}

	client, err := newRemoteClient(ctx, cmd)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	sample, err := client.GetSampleByName(ctx, name)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	commandHandler.logger.Info("Sample ", sample.Name, " with id ", sample.ID)
	if sample.CurrentLocation != "" {
		commandHandler.logger.Info("Current location: ", sample.CurrentLocation)
	}
	if sample.Purpose != "" {
		commandHandler.logger.Info("Purpose: ", sample.Purpose)
	}
	if sample.Tags != "" {
		commandHandler.logger.Info("Tags: ", sample.Tags)
	}
}

// CreateSampleCmd registers a new sample on the server
func (commandHandler *SampleCommandHandler) CreateSampleCmd(cmd *cobra.Command, _ []string) {
	ctx := context.Background()

	name, err := cmd.Flags().GetString("name")
	if err != nil {
		commandHandler.logger.Error("invalid name flag ", err)
		return
	}
	currentLocation, err := cmd.Flags().GetString("current-location")
	if err != nil {
		commandHandler.logger.Error("invalid current-location flag ", err)
		return
	}
	purpose, err := cmd.Flags().GetString("purpose")
	if err != nil {
		commandHandler.logger.Error("invalid purpose flag ", err)
		return
	}
	tags, err := cmd.Flags().GetString("tags")
	if err != nil {
		commandHandler.logger.Error("invalid tags flag ", err)
		return
	}
	topicID, err := cmd.Flags().GetString("topic-id")
	if err != nil {
		commandHandler.logger.Error("invalid topic-id flag ", err)
		return
	}

	client, err := newRemoteClient(ctx, cmd)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	newSample := &remote.NewSample{
		Name:            name,
		Tags:            tags,
		Purpose:         purpose,
		CurrentLocation: currentLocation,
	}
	if topicID != "" {
		newSample.TopicID = &topicID
	}

	sample, err := client.CreateSample(ctx, newSample)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	commandHandler.logger.Info("Created sample ", sample.Name, " with id ", sample.ID)
}

// AddMySamplesCmd adds samples to the caller's My Samples set
func (commandHandler *SampleCommandHandler) AddMySamplesCmd(cmd *cobra.Command, _ []string) {
	ctx := context.Background()

	names, err := cmd.Flags().GetString("names")
	if err != nil {
		commandHandler.logger.Error("invalid names flag ", err)
		return
	}

	client, err := newRemoteClient(ctx, cmd)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	var sampleIDs []string
	for _, name := range strings.Split(names, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		sample, err := client.GetSampleByName(ctx, name)
		if err != nil {
			commandHandler.logger.Error(err)
			return
		}
		sampleIDs = append(sampleIDs, sample.ID)
	}

	if len(sampleIDs) == 0 {
		commandHandler.logger.Error("no sample names given")
		return
	}

	if err := client.AddToMySamples(ctx, sampleIDs); err != nil {
		commandHandler.logger.Error(err)
		return
	}

	commandHandler.logger.Info("Added ", len(sampleIDs), " samples to My Samples")
}

// InitSampleCommands registers sample-related commands
func InitSampleCommands(rootCmd *cobra.Command) error {
	handler, err := NewSampleCommandHandler()

	if err != nil {
		return fmt.Errorf("failed to create sample command handler %w", err)
	}

	var getSampleCmd = &cobra.Command{
		Use:   "get-sample",
		Short: "Fetch a sample by name",
		Run:   handler.GetSampleCmd,
	}
	getSampleCmd.Flags().StringP("name", "", "", "Sample name, current or former")
	registerServerFlag(getSampleCmd)
	rootCmd.AddCommand(getSampleCmd)

	var createSampleCmd = &cobra.Command{
		Use:   "create-sample",
		Short: "Register a new sample",
		Run:   handler.CreateSampleCmd,
	}
	createSampleCmd.Flags().StringP("name", "", "", "Sample name")
	createSampleCmd.Flags().StringP("current-location", "", "", "Where the sample currently is")
	createSampleCmd.Flags().StringP("purpose", "", "", "Purpose of the sample")
	createSampleCmd.Flags().StringP("tags", "", "", "Comma-separated tags")
	createSampleCmd.Flags().StringP("topic-id", "", "", "Topic to assign the sample to")
	registerServerFlag(createSampleCmd)
	rootCmd.AddCommand(createSampleCmd)

	var addMySamplesCmd = &cobra.Command{
		Use:   "add-my-samples",
		Short: "Add samples to your My Samples set",
		Run:   handler.AddMySamplesCmd,
	}
	addMySamplesCmd.Flags().StringP("names", "", "", "Comma-separated sample names")
	registerServerFlag(addMySamplesCmd)
	rootCmd.AddCommand(addMySamplesCmd)

	return nil
}
