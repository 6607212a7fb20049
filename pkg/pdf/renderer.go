// Package pdf lays out computed invoice jobs as paginated PDF documents.
package pdf

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/invoicing-service/pkg/invoice"
)

// RenderIOError reports a failure to create or write an output artifact.
type RenderIOError struct {
	Path string
	Err  error
}

func (e *RenderIOError) Error() string {
	return fmt.Sprintf("render %s: %v", e.Path, e.Err)
}

func (e *RenderIOError) Unwrap() error { return e.Err }

// Config controls document rendering.
type Config struct {
	// OutputDir is where RenderFile writes artifacts.
	OutputDir string
	// DaysDue is the number of business days between the issue date and
	// the due date. Zero means the default of 30.
	DaysDue int
	// Clock supplies the header's "Date" row; time.Now when nil.
	Clock func() time.Time
	// Uncompressed disables PDF stream compression. Tests use it to
	// inspect page content as plain text.
	Uncompressed bool
}

// DefaultDaysDue is the due-date offset applied when none is configured.
const DefaultDaysDue = 30

// Renderer draws invoice jobs into the fixed four-block document layout.
type Renderer struct {
	outputDir    string
	daysDue      int
	clock        func() time.Time
	uncompressed bool
}

// NewRenderer builds a renderer from cfg, filling in defaults.
func NewRenderer(cfg Config) *Renderer {
	r := &Renderer{
		outputDir:    cfg.OutputDir,
		daysDue:      cfg.DaysDue,
		clock:        cfg.Clock,
		uncompressed: cfg.Uncompressed,
	}
	if r.daysDue <= 0 {
		r.daysDue = DefaultDaysDue
	}
	if r.clock == nil {
		r.clock = time.Now
	}
	return r
}

// Page geometry in millimeters on A4.
const (
	pageMargin  = 10.0
	contentW    = 190.0
	rowH        = 6.0
	minItemRows = 8
)

type rgb struct{ r, g, b int }

var (
	tableHeadFill = rgb{1, 105, 52}    // #016934
	labelFill     = rgb{38, 50, 56}    // #263238
	rowEvenFill   = rgb{255, 255, 255} // #FFFFFF
	rowOddFill    = rgb{187, 187, 187} // #BBBBBB
	white         = rgb{255, 255, 255}
	black         = rgb{0, 0, 0}
)

var (
	itemHeaders = [4]string{"DESCRIPTION", "QTY/HRS", "UNIT PRICE/RATE", "AMOUNT"}
	itemColW    = [4]float64{80, 30, 40, 40}
)

// paymentLabel is the visible text of the payment hyperlink.
const paymentLabel = "Online Payment via PayPal"

// Render draws job into w as a PDF document: header block, bill/ship
// block, itemized table, then the optional reference and payment blocks.
func (r *Renderer) Render(job *invoice.Job, w io.Writer) error {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetCompression(!r.uncompressed)
	doc.SetMargins(pageMargin, pageMargin, pageMargin)
	doc.SetAutoPageBreak(true, pageMargin)
	doc.AddPage()

	r.drawHeader(doc, job)
	doc.Ln(rowH)
	r.drawBillShip(doc, job)
	doc.Ln(rowH)
	r.drawItems(doc, job)
	doc.Ln(rowH)
	if job.Reference() != "" {
		r.drawReference(doc, job)
		doc.Ln(rowH)
	}
	if job.PaymentLink() != "" {
		r.drawPayment(doc, job)
	}

	if err := doc.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// RenderFile renders job into its derived file name under the configured
// output directory and returns the written path.
func (r *Renderer) RenderFile(job *invoice.Job) (string, error) {
	if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
		return "", &RenderIOError{Path: r.outputDir, Err: err}
	}
	path := filepath.Join(r.outputDir, OutputName(job))
	f, err := os.Create(path)
	if err != nil {
		return "", &RenderIOError{Path: path, Err: err}
	}
	if err := r.Render(job, f); err != nil {
		f.Close()
		return "", &RenderIOError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return "", &RenderIOError{Path: path, Err: err}
	}
	return path, nil
}

// drawHeader draws the 3-column header grid: sender identity stacked on
// the left, the Date / Invoice # / Due Date rows on the right.
func (r *Renderer) drawHeader(doc *gofpdf.Fpdf, job *invoice.Job) {
	s := job.Sender()
	due := invoice.AddBusinessDays(job.IssueDate(), r.daysDue)

	left := [6]string{
		s.Name,
		s.Street,
		fmt.Sprintf("%s, %s %s", s.City, s.State, s.Zip),
		s.Phone,
		s.Email,
		s.Website,
	}
	labels := [6]string{"Date", "Invoice #", "Due Date"}
	values := [6]string{
		shortDate(r.clock()),
		fmt.Sprintf("%d", job.InvoiceNumber()),
		shortDate(due),
	}

	for i := range left {
		doc.SetFont("Helvetica", "", 10)
		doc.CellFormat(90, rowH, left[i], "", 0, "L", false, 0, "")
		doc.SetFont("Helvetica", "B", 10)
		doc.CellFormat(50, rowH, labels[i], "", 0, "R", false, 0, "")
		doc.SetFont("Helvetica", "", 10)
		doc.CellFormat(50, rowH, values[i], "", 1, "L", false, 0, "")
	}
}

// drawBillShip draws the 2-column bill/ship grid. The ship column keeps
// its cells when shipping is off, but they render blank.
func (r *Renderer) drawBillShip(doc *gofpdf.Fpdf, job *invoice.Job) {
	bill, ship, shipHeader := billShipColumns(job)
	colW := contentW / 2

	doc.SetFont("Helvetica", "B", 10)
	setText(doc, white)
	setFill(doc, labelFill)
	doc.CellFormat(colW, rowH, "BILL TO", "", 0, "L", true, 0, "")
	doc.CellFormat(colW, rowH, shipHeader, "", 1, "L", shipHeader != "", 0, "")

	setText(doc, black)
	doc.SetFont("Helvetica", "", 10)
	for i := range bill {
		doc.CellFormat(colW, rowH, bill[i], "", 0, "L", false, 0, "")
		doc.CellFormat(colW, rowH, ship[i], "", 1, "L", false, 0, "")
	}
}

// drawItems draws the itemized table: styled header row, data rows padded
// to the fixed minimum, then the four summary rows.
func (r *Renderer) drawItems(doc *gofpdf.Fpdf, job *invoice.Job) {
	doc.SetFont("Helvetica", "B", 10)
	setText(doc, white)
	setFill(doc, tableHeadFill)
	for i, h := range itemHeaders {
		ln := 0
		if i == len(itemHeaders)-1 {
			ln = 1
		}
		doc.CellFormat(itemColW[i], rowH, h, "", ln, "L", true, 0, "")
	}

	setText(doc, black)
	doc.SetFont("Helvetica", "", 10)
	items := job.Items()
	for row := 0; row < itemRowCount(len(items)); row++ {
		var cells [4]string
		if row < len(items) {
			li := items[row]
			cells = [4]string{
				li.Description(),
				li.Hours().StringFixed(3),
				"$ " + li.Rate().StringFixed(2),
				"$ " + li.LineTotal().StringFixed(2),
			}
		}
		setFill(doc, rowFill(row))
		for i, c := range cells {
			ln := 0
			if i == len(cells)-1 {
				ln = 1
			}
			doc.CellFormat(itemColW[i], rowH, c, "", ln, "L", true, 0, "")
		}
	}

	summary := [4]struct {
		label  string
		amount decimal.Decimal
	}{
		{"Subtotal", job.Subtotal()},
		{"Discounts", job.Discount()},
		{"Taxes", job.Tax()},
		{"Total", job.Total()},
	}
	labelW := itemColW[0] + itemColW[1] + itemColW[2]
	for _, s := range summary {
		doc.SetFont("Helvetica", "B", 10)
		doc.CellFormat(labelW, rowH, s.label, "", 0, "R", false, 0, "")
		doc.SetFont("Helvetica", "", 10)
		doc.CellFormat(itemColW[3], rowH, "$ "+paddedAmount(s.amount), "", 1, "R", false, 0, "")
	}
}

func (r *Renderer) drawReference(doc *gofpdf.Fpdf, job *invoice.Job) {
	doc.SetFont("Helvetica", "B", 10)
	doc.CellFormat(63, rowH, "Reference:", "", 0, "R", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(contentW-63, rowH, job.Reference(), "", 1, "L", false, 0, "")
}

// drawPayment draws the centered payment label with its clickable region
// bound to the job's payment URL.
func (r *Renderer) drawPayment(doc *gofpdf.Fpdf, job *invoice.Job) {
	doc.SetFont("Helvetica", "B", 10)
	doc.CellFormat(contentW, rowH, paymentLabel, "", 1, "C", false, 0, job.PaymentLink())
}

// billShipColumns returns the line sets for the two columns. Both equal
// the recipient's shipping block; the ship column and its header are
// blanked when the job's shipping flag is off.
func billShipColumns(job *invoice.Job) (bill, ship [5]string, shipHeader string) {
	bill = job.Recipient().ShippingBlock()
	if !job.Shipping() {
		return bill, [5]string{}, ""
	}
	return bill, bill, "SHIP TO"
}

// itemRowCount pads short invoices out to a fixed minimum of data rows so
// the table keeps a consistent height.
func itemRowCount(n int) int {
	if n < minItemRows {
		return minItemRows
	}
	return n
}

// rowFill alternates the data-row background by row parity, padding rows
// included.
func rowFill(row int) rgb {
	if row%2 == 0 {
		return rowEvenFill
	}
	return rowOddFill
}

// paddedAmount formats a summary amount zero-padded to at least seven
// characters including the decimal point, the sign counted in the width.
func paddedAmount(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	for len(sign)+len(s) < 7 {
		s = "0" + s
	}
	return sign + s
}

// OutputName derives the artifact file name: the issue date with
// punctuation stripped, the recipient company and the recipient name,
// joined by hyphens.
func OutputName(job *invoice.Job) string {
	return fmt.Sprintf("%s-%s-%s.pdf",
		stripPunct(job.DateString()),
		job.Recipient().Company,
		job.Recipient().Name,
	)
}

// shortDate matches the header's numeric month/day/year form.
func shortDate(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", int(t.Month()), t.Day(), t.Year())
}

func stripPunct(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func setFill(doc *gofpdf.Fpdf, c rgb) { doc.SetFillColor(c.r, c.g, c.b) }
func setText(doc *gofpdf.Fpdf, c rgb) { doc.SetTextColor(c.r, c.g, c.b) }
