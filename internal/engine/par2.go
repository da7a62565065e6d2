package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/raoulx24/par2mirror/internal/logging"
	"github.com/raoulx24/par2mirror/internal/recovery"
)

// Par2 drives par2cmdline (or a compatible binary).
type Par2 struct {
	bin string
	log logging.Logger
}

// NewPar2 returns an engine running bin, which is looked up in PATH when it
// contains no path separator.
func NewPar2(bin string, log logging.Logger) *Par2 {
	return &Par2{bin: bin, log: log}
}

func createArgs(link recovery.Link, baseDir string, redundancy int) []string {
	return []string{
		"create",
		"-qq",
		"-r" + strconv.Itoa(redundancy),
		"-B" + baseDir,
		link.Recovery, link.Source,
	}
}

func verifyArgs(link recovery.Link, baseDir string) []string {
	return []string{
		"verify",
		"-B" + baseDir,
		link.Recovery, link.Source,
	}
}

func repairArgs(link recovery.Link, baseDir string) []string {
	return []string{
		"repair",
		"-B" + baseDir,
		link.Recovery, link.Source,
	}
}

func (p *Par2) Create(ctx context.Context, link recovery.Link, baseDir string, redundancy int) error {
	res, err := p.run(ctx, createArgs(link, baseDir, redundancy))
	if err != nil {
		return err
	}
	if res.exitCode != 0 {
		return fmt.Errorf("%s create %s: exit status %d (stderr: %s)",
			p.bin, link.Source, res.exitCode, strings.TrimSpace(res.stderr))
	}
	return nil
}

func (p *Par2) Verify(ctx context.Context, link recovery.Link, baseDir string) (bool, error) {
	res, err := p.run(ctx, verifyArgs(link, baseDir))
	if err != nil {
		return false, err
	}
	if res.exitCode != 0 {
		p.log.Debug("verify failed", "source", link.Source, "exit", res.exitCode, "output", strings.TrimSpace(res.stdout))
		return false, nil
	}
	return true, nil
}

func (p *Par2) RepairCommand(link recovery.Link, baseDir string) string {
	words := append([]string{p.bin}, repairArgs(link, baseDir)...)
	for i, w := range words {
		words[i] = shellQuote(w)
	}
	return strings.Join(words, " ")
}

type result struct {
	exitCode int
	stdout   string
	stderr   string
}

// run executes the engine, draining both output streams, and returns its
// exit status. Only failures to run the process at all are errors.
func (p *Par2) run(ctx context.Context, args []string) (result, error) {
	var stdout, stderr bytes.Buffer
	command := exec.CommandContext(ctx, p.bin, args...)
	command.Stdout = &stdout
	command.Stderr = &stderr

	p.log.Debug("running engine", "bin", p.bin, "args", args)
	err := command.Run()

	res := result{stdout: stdout.String(), stderr: stderr.String()}
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return res, nil
	case ctx.Err() != nil:
		return res, fmt.Errorf("%s %s: %w", p.bin, args[0], ctx.Err())
	case errors.As(err, &exitErr) && exitErr.ExitCode() > 0:
		res.exitCode = exitErr.ExitCode()
		return res, nil
	default:
		return res, fmt.Errorf("%s %s: %w", p.bin, args[0], err)
	}
}

// shellQuote wraps w in single quotes when a POSIX shell would split or
// expand it.
func shellQuote(w string) string {
	if w != "" && !strings.ContainsAny(w, " \t\n'\"\\$`&|;<>()*?[]{}~!#") {
		return w
	}
	return "'" + strings.ReplaceAll(w, "'", `'\''`) + "'"
}
