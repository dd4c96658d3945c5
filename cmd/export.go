package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/newrelic/go-easy-modifiers/export"
	"github.com/newrelic/go-easy-modifiers/internal/comment"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	defaultPackagePath    = ""
	defaultOutputFilePath = ""
	defaultDiffFileName   = "export.diff"
)

var (
	packagePath string
	names       []string
	diffFile    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "export Go identifiers",
	Long:  "make package level Go identifiers public, renaming every use and the doc comment, and write the changes as a diff file",
	Args:  cobra.ExactArgs(0),
	Run: func(cmd *cobra.Command, args []string) {
		cobra.CheckErr(Export())
	},
}

// validateOutputFile checks that the custom output path is valid
func validateOutputFile(path string) error {
	if filepath.Ext(path) != ".diff" {
		return errors.New("output file must have a .diff extension")
	}

	_, err := os.Stat(filepath.Dir(path))
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("output file directory does not exist: %v", err)
	}

	return nil
}

// setOutputFilePath returns a complete output file path based on the provided
// diffFile flag value. If the flag is empty, the default path will be based
// on the applicationPath.
//
// This will fail if the packagePath is not valid, and must be run after
// validating it.
func setOutputFilePath(outputFilePath, applicationPath string) (string, error) {
	if outputFilePath == "" {
		outputFilePath = filepath.Join(applicationPath, defaultDiffFileName)
	}

	err := validateOutputFile(outputFilePath)
	if err != nil {
		return "", err
	}

	return outputFilePath, nil
}

func Export() error {
	if packagePath == "" {
		return errors.New("--path is required")
	}
	if len(names) == 0 {
		return errors.New("at least one --name is required")
	}

	if _, err := os.Stat(packagePath); err != nil {
		return fmt.Errorf("--path \"%s\" is invalid: %v", packagePath, err)
	}

	outputFile, err := setOutputFilePath(diffFile, packagePath)
	if err != nil {
		return err
	}

	comment.EnableConsolePrinter(packagePath, logger)
	defer comment.WriteAll()

	pkgs, err := export.Load(packagePath)
	if err != nil {
		return err
	}

	manager := export.NewManager(pkgs, packagePath, logger)
	var exportErrs []error
	for _, name := range names {
		if _, err := manager.Export(name); err != nil {
			exportErrs = append(exportErrs, err)
		}
	}

	f, err := os.Create(outputFile)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := manager.WriteDiff(f); err != nil {
		return err
	}
	logger.Info("changes written", zap.String("diff", outputFile), zap.Int("files", manager.Modified()))
	return errors.Join(exportErrs...)
}

func init() {
	exportCmd.Flags().StringVar(&packagePath, "path", defaultPackagePath, "specify package path")
	exportCmd.Flags().StringArrayVar(&names, "name", nil, "package level identifier to export (repeatable)")
	exportCmd.Flags().StringVar(&diffFile, "diff", defaultOutputFilePath, "specify diff output file path")
	cobra.MarkFlagFilename(exportCmd.Flags(), "diff", ".diff") // for file completion

	rootCmd.AddCommand(exportCmd)
}
