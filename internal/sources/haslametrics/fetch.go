package haslametrics

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/chromedp"
)

// selectDateJS picks the option in the date dropdown whose label matches
// one of the given strings and fires the page's change handler. Returns
// true when a matching option was found.
const selectDateJS = `(function(labels) {
	var sel = document.getElementById('cboUpcomingDates');
	if (!sel) return false;
	for (var i = 0; i < sel.options.length; i++) {
		var text = sel.options[i].text.trim();
		if (labels.indexOf(text) >= 0) {
			sel.selectedIndex = i;
			sel.dispatchEvent(new Event('change'));
			return true;
		}
	}
	return false;
})(%s)`

// scoresReadyJS reports whether the board has rendered projected scores
// for the selected date.
const scoresReadyJS = `(function() {
	var cells = document.querySelectorAll('td[id^="tdUpcoming_"][id$="_sc"]');
	if (cells.length === 0) return false;
	for (var i = 0; i < cells.length; i++) {
		if (cells[i].textContent.trim() !== '') return true;
	}
	return false;
})()`

// fetchRendered loads the board in headless Chrome, selects the
// requested date and waits for the score cells to populate before
// snapshotting the DOM. date is in YYYYMMDD form.
func (h *Haslametrics) fetchRendered(ctx context.Context, date string) (string, error) {
	labels, err := dateLabels(date)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, h.cfg.Timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
	)
	if h.cfg.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(h.cfg.ChromePath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	var selected bool
	var html string
	err = chromedp.Run(browserCtx,
		chromedp.Navigate(h.cfg.URL),
		chromedp.WaitVisible("#cboUpcomingDates", chromedp.ByID),
		chromedp.Evaluate(fmt.Sprintf(selectDateJS, jsStringArray(labels)), &selected),
		chromedp.ActionFunc(func(ctx context.Context) error {
			if !selected {
				return fmt.Errorf("date %s not offered by the board", date)
			}
			return nil
		}),
		// Scores fill in asynchronously after the date change; wait for
		// them instead of sleeping a fixed interval.
		chromedp.Poll(scoresReadyJS, nil, chromedp.WithPollingTimeout(h.cfg.PollTimeout)),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("chromedp run: %w", err)
	}

	slog.Debug("Rendered Haslametrics board", "date", date, "bytes", len(html))
	return html, nil
}

// dateLabels returns the dropdown label variants for a YYYYMMDD date.
// The site has used both padded and unpadded day numbers.
func dateLabels(date string) ([]string, error) {
	t, err := time.Parse("20060102", date)
	if err != nil {
		return nil, fmt.Errorf("parse date %q: %w", date, err)
	}
	return []string{
		t.Format("Monday, January 2, 2006"),
		t.Format("Monday, January 02, 2006"),
	}, nil
}

func jsStringArray(items []string) string {
	out := "["
	for i, s := range items {
		if i > 0 {
			out += ","
		}
		out += fmt.Sprintf("%q", s)
	}
	return out + "]"
}
