package web

import (
	"context"
	"slices"

	"github.com/rpupo63/portfolio-site/database"
	"github.com/rpupo63/portfolio-site/models"
	"github.com/rpupo63/portfolio-site/services"
	"golang.org/x/sync/errgroup"
)

// worksPreviewSize is how many projects the gallery shows.
const worksPreviewSize = 6

type page struct {
	Profile      Profile
	Settings     models.Settings
	Works        []*models.Project
	Categories   []categoryView
	Testimonials []testimonialView
	RowA         []testimonialView
	RowB         []testimonialView
	Flash        string
}

type categoryView struct {
	models.Category
	Clients []clientView
}

type clientView struct {
	models.Client
	Projects []*models.Project
}

type testimonialView struct {
	models.Testimonial
	Logo  string
	Stars []bool
}

// loadPage reads every collection the page needs in parallel. The first
// failure cancels the rest.
func loadPage(ctx context.Context, db database.Database) (page, error) {
	var (
		categories   []*models.Category
		clients      []*models.Client
		projects     []*models.Project
		testimonials []*models.Testimonial
		settings     *models.Settings
	)

	g, ctx := errgroup.WithContext(ctx)
	fetch := func(query func() error) {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return query()
		})
	}
	fetch(func() (err error) { categories, err = db.CategoryRepo().FindAll(); return })
	fetch(func() (err error) { clients, err = db.ClientRepo().FindAll(); return })
	fetch(func() (err error) { projects, err = db.ProjectRepo().FindAll(); return })
	fetch(func() (err error) { testimonials, err = db.TestimonialRepo().FindAll(false); return })
	fetch(func() (err error) { settings, err = db.SettingsRepo().Get(); return })
	if err := g.Wait(); err != nil {
		return page{}, err
	}

	p := page{Settings: models.DefaultSettings()}
	if settings != nil {
		p.Settings = *settings
	}
	p.Works = projects[:min(len(projects), worksPreviewSize)]
	p.Categories = groupCategories(categories, clients, projects)
	p.Testimonials = mergeTestimonials(testimonials, clients)
	p.RowA, p.RowB = marqueeRows(p.Testimonials)
	return p, nil
}

func groupCategories(categories []*models.Category, clients []*models.Client, projects []*models.Project) []categoryView {
	byClient := make(map[string][]*models.Project)
	for _, p := range projects {
		byClient[p.ClientName] = append(byClient[p.ClientName], p)
	}

	views := make([]categoryView, 0, len(categories))
	for _, c := range categories {
		view := categoryView{Category: *c}
		for _, client := range clients {
			if client.CategoryKey == c.Key {
				view.Clients = append(view.Clients, clientView{Client: *client, Projects: byClient[client.Name]})
			}
		}
		views = append(views, view)
	}
	return views
}

// mergeTestimonials resolves each logo from the testimonial itself or from
// the client whose name matches the company. With nothing approved the
// sample testimonials are shown instead.
func mergeTestimonials(testimonials []*models.Testimonial, clients []*models.Client) []testimonialView {
	logoByCompany := make(map[string]string, len(clients))
	for _, c := range clients {
		logoByCompany[c.Name] = c.LogoURL
	}

	source := make([]models.Testimonial, 0, len(testimonials))
	for _, t := range testimonials {
		source = append(source, *t)
	}
	if len(source) == 0 {
		source = services.SampleTestimonials()
	}

	views := make([]testimonialView, 0, len(source))
	for _, t := range source {
		logo := t.LogoURL
		if logo == "" {
			logo = logoByCompany[t.Company]
		}
		views = append(views, testimonialView{Testimonial: t, Logo: logo, Stars: stars(t.Rating)})
	}
	return views
}

func stars(rating int) []bool {
	out := make([]bool, models.MaxRating)
	for i := range models.ClampRating(rating) {
		out[i] = true
	}
	return out
}

// marqueeRows doubles each row so the CSS animation loops seamlessly. Row
// B runs in reverse order.
func marqueeRows(base []testimonialView) (a, b []testimonialView) {
	reversed := slices.Clone(base)
	slices.Reverse(reversed)
	a = append(slices.Clone(base), base...)
	b = append(slices.Clone(reversed), reversed...)
	return a, b
}
