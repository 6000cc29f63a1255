package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/juliabase/juliabase/internal/pkg/logger"
	"github.com/juliabase/juliabase/pkg/remote"

	"github.com/spf13/cobra"
)

// DepositionCommandHandler encapsulates logic for handling deposition operations via CLI.
type DepositionCommandHandler struct {
	logger logger.Logger
}

// NewDepositionCommandHandler initializes and returns a DepositionCommandHandler instance
// with a configured logger.
func NewDepositionCommandHandler() (*DepositionCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	return &DepositionCommandHandler{
		logger: loggerInstance,
	}, nil
}

// resolveSampleIDs turns a comma-separated list of sample names into IDs.
func (commandHandler *DepositionCommandHandler) resolveSampleIDs(ctx context.Context, client *remote.Client, names string) ([]string, error) {
	var sampleIDs []string
	for _, name := range strings.Split(names, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		sample, err := client.GetSampleByName(ctx, name)
		if err != nil {
			return nil, err
		}
		sampleIDs = append(sampleIDs, sample.ID)
	}
	return sampleIDs, nil
}

// GetDepositionCmd fetches a deposition by number and prints a summary
func (commandHandler *DepositionCommandHandler) GetDepositionCmd(cmd *cobra.Command, _ []string) {
	ctx := context.Background()

	number, err := cmd.Flags().GetString("number")
	if err != nil {
		commandHandler.logger.Error("invalid number flag ", err)
		return
	}

	client, err := newRemoteClient(ctx, cmd)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	deposition, err := client.GetDeposition(ctx, number)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	commandHandler.logger.Info("Deposition ", deposition.Number, " with ", len(deposition.Layers), " layers on ", len(deposition.SampleIDs), " samples")
	if deposition.Finished {
		commandHandler.logger.Info("Deposition is finished")
	}
}

// CreateDepositionCmd records a new deposition run
func (commandHandler *DepositionCommandHandler) CreateDepositionCmd(cmd *cobra.Command, _ []string) {
	ctx := context.Background()

	number, err := cmd.Flags().GetString("number")
	if err != nil {
		commandHandler.logger.Error("invalid number flag ", err)
		return
	}
	sampleNames, err := cmd.Flags().GetString("samples")
	if err != nil {
		commandHandler.logger.Error("invalid samples flag ", err)
		return
	}
	comments, err := cmd.Flags().GetString("comments")
	if err != nil {
		commandHandler.logger.Error("invalid comments flag ", err)
		return
	}
	finished, err := cmd.Flags().GetBool("finished")
	if err != nil {
		commandHandler.logger.Error("invalid finished flag ", err)
		return
	}

	client, err := newRemoteClient(ctx, cmd)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	sampleIDs, err := commandHandler.resolveSampleIDs(ctx, client, sampleNames)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	if len(sampleIDs) == 0 {
		commandHandler.logger.Error("no sample names given")
		return
	}

	newDeposition := &remote.NewDeposition{
		Number:    number,
		Comments:  comments,
		SampleIDs: sampleIDs,
		Finished:  finished,
	}

	deposition, err := client.CreateDeposition(ctx, newDeposition)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	commandHandler.logger.Info("Created deposition ", deposition.Number, " with id ", deposition.ID)
}

// EditDepositionCmd appends a layer to an existing deposition or marks it finished
func (commandHandler *DepositionCommandHandler) EditDepositionCmd(cmd *cobra.Command, _ []string) {
	ctx := context.Background()

	number, err := cmd.Flags().GetString("number")
	if err != nil {
		commandHandler.logger.Error("invalid number flag ", err)
		return
	}
	comments, err := cmd.Flags().GetString("comments")
	if err != nil {
		commandHandler.logger.Error("invalid comments flag ", err)
		return
	}
	addLayer, err := cmd.Flags().GetBool("add-layer")
	if err != nil {
		commandHandler.logger.Error("invalid add-layer flag ", err)
		return
	}
	thickness, err := cmd.Flags().GetFloat64("thickness")
	if err != nil {
		commandHandler.logger.Error("invalid thickness flag ", err)
		return
	}
	temperature, err := cmd.Flags().GetFloat64("temperature")
	if err != nil {
		commandHandler.logger.Error("invalid temperature flag ", err)
		return
	}
	finish, err := cmd.Flags().GetBool("finish")
	if err != nil {
		commandHandler.logger.Error("invalid finish flag ", err)
		return
	}

	client, err := newRemoteClient(ctx, cmd)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	edit := &remote.DepositionEdit{}
	if comments != "" {
		edit.Comments = &comments
	}
	if addLayer {
		edit.LayerEdits = []remote.LayerEdit{{
			Action: "add",
			Layer: &remote.Layer{
				Thickness:   thickness,
				Temperature: temperature,
			},
		}}
	}
	if finish {
		finished := true
		edit.Finished = &finished
	}

	deposition, err := client.UpdateDeposition(ctx, number, edit)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	commandHandler.logger.Info("Updated deposition ", deposition.Number, ", now ", len(deposition.Layers), " layers")
}

// InitDepositionCommands registers deposition-related commands
func InitDepositionCommands(rootCmd *cobra.Command) error {
	handler, err := NewDepositionCommandHandler()

	if err != nil {
		return fmt.Errorf("failed to create deposition command handler %w", err)
	}

	var getDepositionCmd = &cobra.Command{
		Use:   "get-deposition",
		Short: "Fetch a deposition by number",
		Run:   handler.GetDepositionCmd,
	}
	getDepositionCmd.Flags().StringP("number", "", "", "Deposition number")
	registerServerFlag(getDepositionCmd)
	rootCmd.AddCommand(getDepositionCmd)

	var createDepositionCmd = &cobra.Command{
		Use:   "create-deposition",
		Short: "Record a new deposition run",
		Run:   handler.CreateDepositionCmd,
	}
	createDepositionCmd.Flags().StringP("number", "", "", "Deposition number (empty to auto-assign)")
	createDepositionCmd.Flags().StringP("samples", "", "", "Comma-separated sample names")
	createDepositionCmd.Flags().StringP("comments", "", "", "Comments on the run")
	createDepositionCmd.Flags().BoolP("finished", "", false, "Mark the deposition as finished")
	registerServerFlag(createDepositionCmd)
	rootCmd.AddCommand(createDepositionCmd)

	var editDepositionCmd = &cobra.Command{
		Use:   "edit-deposition",
		Short: "Edit an unfinished deposition",
		Run:   handler.EditDepositionCmd,
	}
	editDepositionCmd.Flags().StringP("number", "", "", "Deposition number")
	editDepositionCmd.Flags().StringP("comments", "", "", "Replacement comments")
	editDepositionCmd.Flags().BoolP("add-layer", "", false, "Append a layer")
	editDepositionCmd.Flags().Float64P("thickness", "", 0, "Thickness of the appended layer in nm")
	editDepositionCmd.Flags().Float64P("temperature", "", 0, "Substrate temperature of the appended layer in degrees Celsius")
	editDepositionCmd.Flags().BoolP("finish", "", false, "Freeze the deposition against further edits")
	registerServerFlag(editDepositionCmd)
	rootCmd.AddCommand(editDepositionCmd)

	return nil
}
