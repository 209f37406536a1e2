// Package pdf prints rendered recipe pages to PDF through headless Chrome.
package pdf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-recipebox/internal/fileutil"
	"github.com/alnah/go-recipebox/internal/logger"
	"github.com/alnah/go-recipebox/internal/process"
)

// DefaultTimeout bounds the load and print of one page.
const DefaultTimeout = 30 * time.Second

// Sentinel errors for browser operations.
var (
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")
)

// Recipe cards print on US Letter, in inches.
const (
	letterWidth  = 8.5
	letterHeight = 11
	cardMargin   = 0.5
)

// Converter prints local HTML files to PDF.
type Converter interface {
	PrintFile(ctx context.Context, htmlPath string) ([]byte, error)
	Close() error
}

// Compile-time interface check.
var _ Converter = (*Printer)(nil)

// Options configures the browser.
type Options struct {
	// Timeout bounds each page; DefaultTimeout when zero.
	Timeout time.Duration
	// BrowserBin is a pre-installed Chrome or Chromium binary. Rod downloads
	// Chromium on first use when empty.
	BrowserBin string
	// NoSandbox disables the Chrome sandbox (containers and CI).
	NoSandbox bool
	// Logger receives browser lifecycle events; nil discards.
	Logger *slog.Logger
}

// OptionsFromEnv reads ROD_BROWSER_BIN and CI. The sandbox is disabled
// under CI and whenever a pre-installed browser is used.
func OptionsFromEnv(getenv func(string) string) Options {
	bin := getenv("ROD_BROWSER_BIN")
	return Options{
		BrowserBin: bin,
		NoSandbox:  getenv("CI") == "true" || bin != "",
	}
}

// Printer is a Converter backed by one lazily launched browser that is
// reused for every page until Close.
type Printer struct {
	opts    Options
	log     *slog.Logger
	mu      sync.Mutex
	browser *rod.Browser
	launch  *launcher.Launcher
}

// New returns a Printer. No browser is started until the first page.
func New(opts Options) *Printer {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Printer{opts: opts, log: logger.OrDiscard(opts.Logger)}
}

// ensureBrowser lazily launches and connects to the browser.
func (p *Printer) ensureBrowser() (*rod.Browser, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.browser != nil {
		return p.browser, nil
	}

	l := launcher.New()
	if p.opts.BrowserBin != "" {
		l = l.Bin(p.opts.BrowserBin)
	}
	if p.opts.NoSandbox {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	p.browser, p.launch = browser, l
	p.log.Debug("browser started", "pid", l.PID())
	return browser, nil
}

// Close shuts the browser down and kills any process it left behind.
func (p *Printer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.browser == nil {
		return nil
	}
	err := p.browser.Close()
	if p.launch != nil {
		process.TerminateTree(p.launch.PID())
		p.launch.Kill()
		p.launch.Cleanup()
	}
	p.browser, p.launch = nil, nil
	p.log.Debug("browser stopped")
	return err
}

// PrintFile loads the HTML file at htmlPath and prints it to PDF.
func (p *Printer) PrintFile(ctx context.Context, htmlPath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(htmlPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	browser, err := p.ensureBrowser()
	if err != nil {
		return nil, err
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: fileutil.FileURL(abs)})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer func() { _ = page.Close() }()

	timeout := p.opts.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = min(timeout, time.Until(deadline))
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := page.Timeout(timeout).PDF(printOptions())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return data, nil
}

// printOptions returns US Letter with half-inch margins and backgrounds.
func printOptions() *proto.PagePrintToPDF {
	width, height, margin := inches(letterWidth), inches(letterHeight), inches(cardMargin)
	return &proto.PagePrintToPDF{
		PaperWidth:      width,
		PaperHeight:     height,
		MarginTop:       margin,
		MarginBottom:    margin,
		MarginLeft:      margin,
		MarginRight:     margin,
		PrintBackground: true,
	}
}

func inches(v float64) *float64 { return &v }

// Path returns the PDF path next to an HTML page: soup.html becomes soup.pdf.
func Path(htmlPath string) string {
	return strings.TrimSuffix(htmlPath, filepath.Ext(htmlPath)) + ".pdf"
}

// Export prints htmlPath through c and writes the result to Path(htmlPath).
// It returns the written path.
func Export(ctx context.Context, c Converter, htmlPath string) (string, error) {
	data, err := c.PrintFile(ctx, htmlPath)
	if err != nil {
		return "", err
	}
	out := Path(htmlPath)
	if err := fileutil.WriteFile(out, data); err != nil {
		return "", err
	}
	return out, nil
}

// IsBrowserError reports whether err came from the browser.
func IsBrowserError(err error) bool {
	return errors.Is(err, ErrBrowserConnect) ||
		errors.Is(err, ErrPageCreate) ||
		errors.Is(err, ErrPageLoad) ||
		errors.Is(err, ErrPDFGeneration)
}
