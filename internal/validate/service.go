package validate

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/temirov/codeowners_check/internal/manifest"
)

const (
	manifestParsedMessageConstant = "manifest parsed"
	staleEntryMessageConstant     = "stale entry"
	logFieldManifestPathConstant  = "manifest_path"
	logFieldProjectRootConstant   = "project_root"
	logFieldLineCountConstant     = "line_count"
	logFieldStaleCountConstant    = "stale_count"
	logFieldLineNumberConstant    = "line_number"
	logFieldPatternConstant       = "pattern"
	logFieldOwnerConstant         = "owner"
	patchFilePermissionsConstant  = 0o644
	tableMinimumWidthConstant     = 0
	tableTabWidthConstant         = 8
	tablePaddingConstant          = 2
	tablePaddingCharacterConstant = ' '
)

// Service coordinates manifest parsing, stale-entry reporting, and patch generation.
type Service struct {
	parser         ManifestParser
	patchGenerator PatchGenerator
	fileSystem     FileSystem
	outputWriter   io.Writer
	logger         *zap.Logger
}

// NewService constructs a Service, substituting defaults for nil collaborators.
func NewService(parser ManifestParser, patchGenerator PatchGenerator, fileSystem FileSystem, outputWriter io.Writer, logger *zap.Logger) *Service {
	if parser == nil {
		parser = ParserFunc(manifest.Parse)
	}
	if fileSystem == nil {
		fileSystem = OSFileSystem{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		parser:         parser,
		patchGenerator: patchGenerator,
		fileSystem:     fileSystem,
		outputWriter:   outputWriter,
		logger:         logger,
	}
}

// Run executes the workflow according to the provided options.
func (service *Service) Run(executionContext context.Context, options CommandOptions) error {
	staleEntries, manifestLines, parseError := service.parser.Parse(options.ManifestPath, options.ProjectRoot)
	if parseError != nil {
		return parseError
	}

	service.logger.Debug(
		manifestParsedMessageConstant,
		zap.String(logFieldManifestPathConstant, options.ManifestPath),
		zap.String(logFieldProjectRootConstant, options.ProjectRoot),
		zap.Int(logFieldLineCountConstant, len(manifestLines)),
		zap.Int(logFieldStaleCountConstant, len(staleEntries)),
	)
	for _, staleEntry := range staleEntries {
		service.logger.Debug(
			staleEntryMessageConstant,
			zap.Int(logFieldLineNumberConstant, staleEntry.LineNumber),
			zap.String(logFieldPatternConstant, staleEntry.Pattern),
			zap.String(logFieldOwnerConstant, staleEntry.Owner),
		)
	}

	if options.PatchMode {
		return service.generatePatch(executionContext, options, staleEntries, manifestLines)
	}

	return service.report(options, staleEntries)
}

func (service *Service) report(options CommandOptions, staleEntries []manifest.StaleEntry) error {
	if len(staleEntries) == 0 {
		fmt.Fprintf(service.outputWriter, successMessageTemplateConstant, options.ManifestPath)
		return nil
	}

	fmt.Fprintf(service.outputWriter, staleSummaryTemplateConstant, len(staleEntries), options.ManifestPath)

	if options.Format == ReportFormatCSV {
		return service.renderCSV(staleEntries)
	}
	return service.renderTable(staleEntries)
}

func (service *Service) renderTable(staleEntries []manifest.StaleEntry) error {
	tableWriter := tabwriter.NewWriter(service.outputWriter, tableMinimumWidthConstant, tableTabWidthConstant, tablePaddingConstant, tablePaddingCharacterConstant, 0)
	fmt.Fprintln(tableWriter, tableHeaderConstant)
	for _, staleEntry := range staleEntries {
		fmt.Fprintf(tableWriter, tableRowTemplateConstant, staleEntry.LineNumber, staleEntry.Pattern, staleEntry.DisplayOwner(), staleEntry.Text)
	}
	return tableWriter.Flush()
}

func (service *Service) renderCSV(staleEntries []manifest.StaleEntry) error {
	csvWriter := csv.NewWriter(service.outputWriter)
	header := []string{csvHeaderLineConstant, csvHeaderPatternConstant, csvHeaderOwnerConstant, csvHeaderTextConstant}
	if writeError := csvWriter.Write(header); writeError != nil {
		return writeError
	}
	for _, staleEntry := range staleEntries {
		record := []string{
			strconv.Itoa(staleEntry.LineNumber),
			staleEntry.Pattern,
			staleEntry.DisplayOwner(),
			staleEntry.Text,
		}
		if writeError := csvWriter.Write(record); writeError != nil {
			return writeError
		}
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

func (service *Service) generatePatch(executionContext context.Context, options CommandOptions, staleEntries []manifest.StaleEntry, manifestLines []string) error {
	if len(staleEntries) == 0 {
		fmt.Fprintf(service.outputWriter, nothingToPatchMessageTemplateConstant, options.ManifestPath)
		return nil
	}

	patchText := service.patchGenerator.Generate(executionContext, options.ManifestPath, staleEntries, manifestLines)

	patchFilePath := options.PatchFilePath
	if len(patchFilePath) == 0 {
		patchFilePath = defaultPatchFilePath(options.ManifestPath)
	}

	if writeError := service.fileSystem.WriteFile(patchFilePath, []byte(patchText), patchFilePermissionsConstant); writeError != nil {
		return fmt.Errorf(patchWriteErrorTemplateConstant, patchFilePath, writeError)
	}

	fmt.Fprintf(service.outputWriter, patchWrittenMessageTemplateConstant, patchFilePath, len(staleEntries))
	return nil
}
