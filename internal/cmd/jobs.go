package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"gulfjobs-web/internal/domain"
	"gulfjobs-web/internal/listing"
	"gulfjobs-web/internal/web"
)

type JobsCmd struct {
	List JobsListCmd `cmd:"" default:"withargs" help:"List postings, filtered and paged like the web listing."`
	Show JobsShowCmd `cmd:"" help:"Show one posting."`
}

type JobsListCmd struct {
	Query    string `name:"q" short:"q" help:"Search title, company and city."`
	Country  string `help:"Country, or all." default:"all"`
	Category string `help:"Category, or all." default:"all"`
	Page     int    `help:"Page number (1-based)." default:"1"`
}

type JobsShowCmd struct {
	ID string `arg:"" help:"Posting id."`
}

func (c *Context) listingStore() (listing.Store, func() error, error) {
	if err := c.requireValid(); err != nil {
		return listing.Store{}, nil, err
	}
	be, err := openBackend(c.Config, c.Logger.Debug().Enabled())
	if err != nil {
		return listing.Store{}, nil, err
	}
	return listing.Store{
		Source:  be,
		OrderBy: c.Config.Backend.OrderColumn,
		Timeout: c.Config.Backend.Timeout,
		Logger:  c.Logger,
	}, be.Close, nil
}

func (l *JobsListCmd) Run(ctx *Context) error {
	st, closeFn, err := ctx.listingStore()
	if err != nil {
		return err
	}
	defer func() { _ = closeFn() }()

	crit := domain.FilterCriteria{Term: l.Query, Country: l.Country, Category: l.Category}
	view := st.Query(context.Background(), crit, ctx.Config.Listing.PageSize, l.Page)
	if view.Err != nil {
		return errors.New(listing.FailedToLoadMessage)
	}

	if ctx.JSONOutput {
		return writeJSON(ctx.Out, view.Page)
	}

	if view.Empty() {
		_, err := fmt.Fprintln(ctx.Out, listing.NoJobsMessage)
		return err
	}

	data := pterm.TableData{{"ID", "Title", "Company", "Location", "Category", "Salary", "Deadline"}}
	for _, j := range view.Page.Items {
		data = append(data, []string{j.ID, j.Title, j.Company, j.Location(), j.Category, web.Salary(j), j.Deadline.String()})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(ctx.Out, "%s\n%d jobs found matching your criteria. Page %d of %d.\n",
		table, view.Page.TotalItems, view.Page.Number, view.Page.TotalPages)
	return err
}

func (s *JobsShowCmd) Run(ctx *Context) error {
	st, closeFn, err := ctx.listingStore()
	if err != nil {
		return err
	}
	defer func() { _ = closeFn() }()

	j, err := st.Get(context.Background(), s.ID)
	if err != nil {
		return err
	}
	if ctx.JSONOutput {
		return writeJSON(ctx.Out, j)
	}
	return writeJob(ctx, j)
}

func writeJob(ctx *Context, j domain.JobPosting) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n\n", j.Title, j.Company)
	rows := [][2]string{
		{"Location", j.Location()},
		{"Salary", web.Salary(j)},
		{"Positions", web.Positions(j.Positions)},
		{"Category", j.Category},
		{"Experience", j.Experience},
		{"Type", j.Type},
		{"Deadline", web.Deadline(j.Deadline)},
	}
	for _, r := range rows {
		if r[1] == "" {
			continue
		}
		fmt.Fprintf(&b, "%-11s %s\n", r[0]+":", r[1])
	}
	if j.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", j.Description)
	}
	writeList(&b, "Requirements", j.Requirements)
	writeList(&b, "Benefits", j.Benefits)
	_, err := fmt.Fprint(ctx.Out, b.String())
	return err
}

func writeList(b *strings.Builder, title string, items domain.ItemList) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s:\n", title)
	for _, it := range items {
		fmt.Fprintf(b, "  - %s\n", it)
	}
}
