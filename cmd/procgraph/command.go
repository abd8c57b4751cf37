package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/procgraph"
	"github.com/viant/procgraph/processgraph"
	"github.com/viant/procgraph/tracing"
	"go.uber.org/zap"
)

type options struct {
	configURL  string
	verbose    bool
	traceFile  string
	numericID  uint64
	output     string
	repository string
}

func newRootCommand(out io.Writer) *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "procgraph",
		Short:         "Compile process definitions into binary process graphs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&opts.configURL, "config", "", "YAML config URL")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable development logging")
	root.PersistentFlags().StringVar(&opts.traceFile, "trace-file", "", "Write OpenTelemetry spans to this file")

	compile := &cobra.Command{
		Use:   "compile <definition.yaml>",
		Short: "Compile a definition and write the encoded graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd.Context(), cmd.OutOrStdout(), opts, args[0])
		},
	}
	compile.Flags().Uint64Var(&opts.numericID, "id", 1, "Numeric process id stored in the graph")
	compile.Flags().StringVarP(&opts.output, "output", "o", "", "Encoded graph destination URL")

	inspect := &cobra.Command{
		Use:   "inspect <graph>",
		Short: "Print the nodes and edges of an encoded graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.Context(), cmd.OutOrStdout(), args[0])
		},
	}

	deploy := &cobra.Command{
		Use:   "deploy <definition.yaml>",
		Short: "Compile a definition and store it as a new deployment version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeploy(cmd.Context(), cmd.OutOrStdout(), opts, args[0])
		},
	}
	deploy.Flags().StringVar(&opts.repository, "repository", "", "Deployment repository URL")

	root.AddCommand(compile, inspect, deploy)
	return root
}

func newService(ctx context.Context, opts *options) (*procgraph.Service, error) {
	config := procgraph.DefaultConfig()
	if opts.configURL != "" {
		var err error
		if config, err = procgraph.LoadConfig(ctx, location(opts.configURL)); err != nil {
			return nil, err
		}
	}
	if opts.repository != "" {
		config.Repository.URL = location(opts.repository)
	}
	logger := zap.NewNop()
	if opts.verbose {
		var err error
		if logger, err = zap.NewDevelopment(); err != nil {
			return nil, err
		}
	}
	if opts.traceFile != "" {
		if err := tracing.Init("procgraph", "", opts.traceFile); err != nil {
			return nil, fmt.Errorf("failed to init tracing: %w", err)
		}
	}
	return procgraph.New(ctx, procgraph.WithConfig(config), procgraph.WithLogger(logger))
}

func runCompile(ctx context.Context, out io.Writer, opts *options, definitionURL string) error {
	srv, err := newService(ctx, opts)
	if err != nil {
		return err
	}
	graph, err := srv.Compile(ctx, location(definitionURL), opts.numericID)
	if err != nil {
		return err
	}
	if opts.output != "" {
		if err = afs.New().Upload(ctx, location(opts.output), file.DefaultFileOsMode, bytes.NewReader(graph.Bytes())); err != nil {
			return fmt.Errorf("failed to write graph: %w", err)
		}
	}
	_, err = fmt.Fprintf(out, "%s: %d nodes, %d bytes\n", graph.Descriptor().StringID, graph.NodeCount(), len(graph.Bytes()))
	return err
}

func runInspect(ctx context.Context, out io.Writer, graphURL string) error {
	data, err := afs.New().DownloadWithURL(ctx, location(graphURL))
	if err != nil {
		return fmt.Errorf("failed to read graph: %w", err)
	}
	graph, err := processgraph.Wrap(data)
	if err != nil {
		return err
	}
	printGraph(out, graph)
	return nil
}

func runDeploy(ctx context.Context, out io.Writer, opts *options, definitionURL string) error {
	srv, err := newService(ctx, opts)
	if err != nil {
		return err
	}
	deployed, err := srv.Deploy(ctx, location(definitionURL))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "%s %v %s\n", deployed.ProcessID, deployed.Key, deployed.Checksum)
	return err
}

func printGraph(out io.Writer, graph *processgraph.ProcessGraph) {
	d := graph.Descriptor()
	fmt.Fprintf(out, "process %s numericId=%d initial=%d nodes=%d\n", d.StringID, d.NumericID, d.InitialNodeID, graph.NodeCount())
	for id := uint32(0); id < uint32(graph.NodeCount()); id++ {
		element := graph.FlowElement(id)
		fmt.Fprintf(out, "%4d %-22v %s", id, element.Type(), element.StringID())
		if taskType := element.TaskType(); taskType != "" {
			fmt.Fprintf(out, " taskType=%s", taskType)
		}
		if queueID, ok := element.TaskQueueID(); ok {
			fmt.Fprintf(out, " queue=%d", queueID)
		}
		if outgoing := graph.Outgoing(id); outgoing.Len() > 0 {
			fmt.Fprintf(out, " out=%v", outgoing.AppendTo(nil))
		}
		if incoming := graph.Incoming(id); incoming.Len() > 0 {
			fmt.Fprintf(out, " in=%v", incoming.AppendTo(nil))
		}
		fmt.Fprintln(out)
	}
}

// location turns a local path into an absolute file URL
func location(URL string) string {
	if strings.Contains(URL, "://") {
		return URL
	}
	if abs, err := filepath.Abs(URL); err == nil {
		URL = abs
	}
	return file.Scheme + "://" + URL
}
