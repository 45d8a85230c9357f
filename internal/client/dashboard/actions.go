package dashboard

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/casiec/internal/client/models"
)

func (d *Dashboard) SaveArticle(ctx context.Context, a models.Article, img *models.Image) error {
	msg := "Article published."
	if models.IsPersistedID(a.ID) {
		msg = "Article updated."
	}
	return d.act(ctx, msg, "Failed to save article.", func(ctx context.Context) error {
		return d.content.SaveArticle(ctx, a, img)
	})
}

func (d *Dashboard) DeleteArticle(ctx context.Context, id string) error {
	return d.act(ctx, "Article deleted.", "Failed to delete article.", func(ctx context.Context) error {
		return d.content.DeleteArticle(ctx, id)
	})
}

func (d *Dashboard) SaveTeamMember(ctx context.Context, m models.TeamMember, img *models.Image) error {
	msg := "Team member added."
	if models.IsPersistedID(m.ID) {
		msg = "Team member updated."
	}
	return d.act(ctx, msg, "Failed to save team member.", func(ctx context.Context) error {
		return d.content.SaveTeamMember(ctx, m, img)
	})
}

func (d *Dashboard) DeleteTeamMember(ctx context.Context, id string) error {
	return d.act(ctx, "Team member removed.", "Failed to remove team member.", func(ctx context.Context) error {
		return d.content.DeleteTeamMember(ctx, id)
	})
}

func (d *Dashboard) SaveCampaign(ctx context.Context, c models.Campaign, img *models.Image) error {
	return d.act(ctx, "Campaign saved.", "Failed to save campaign.", func(ctx context.Context) error {
		return d.content.SaveCampaign(ctx, c, img)
	})
}

func (d *Dashboard) DeleteCampaign(ctx context.Context, id string) error {
	return d.act(ctx, "Campaign deleted.", "Failed to delete campaign.", func(ctx context.Context) error {
		return d.content.DeleteCampaign(ctx, id)
	})
}

func (d *Dashboard) SaveCarouselItem(ctx context.Context, item models.CarouselItem) error {
	return d.act(ctx, "Carousel slide saved.", "Failed to save carousel slide.", func(ctx context.Context) error {
		return d.content.SaveCarouselItem(ctx, item)
	})
}

func (d *Dashboard) DeleteCarouselItem(ctx context.Context, id string) error {
	return d.act(ctx, "Carousel slide deleted.", "Failed to delete carousel slide.", func(ctx context.Context) error {
		return d.content.DeleteCarouselItem(ctx, id)
	})
}

// PostTicker publishes a manual headline.
func (d *Dashboard) PostTicker(ctx context.Context, text string, category models.TickerCategory) error {
	if category == "" {
		category = models.TickerMarket
	}
	item := models.TickerItem{Text: text, Category: category, IsManual: true}
	return d.act(ctx, "Headline published.", "Failed to publish headline.", func(ctx context.Context) error {
		return d.content.AddTickerItem(ctx, item)
	})
}

func (d *Dashboard) DeleteTicker(ctx context.Context, id string) error {
	return d.act(ctx, "Headline removed.", "Failed to remove headline.", func(ctx context.Context) error {
		return d.content.DeleteTickerItem(ctx, id)
	})
}

func (d *Dashboard) UpdateApplicationStatus(ctx context.Context, category models.Category, id string, status models.ApplicationStatus) error {
	return d.act(ctx, fmt.Sprintf("Status updated to %s.", status), "Failed to update status.", func(ctx context.Context) error {
		return d.applications.UpdateStatus(ctx, category, id, status)
	})
}

func (d *Dashboard) DeleteApplication(ctx context.Context, category models.Category, id string) error {
	return d.act(ctx, "Application deleted.", "Failed to delete application.", func(ctx context.Context) error {
		return d.applications.Delete(ctx, category, id)
	})
}

// OpenInquiry returns the inquiry for reading and records that it was opened.
// Failing to record the mark is logged but does not hide the inquiry.
func (d *Dashboard) OpenInquiry(ctx context.Context, id string) (models.Inquiry, error) {
	inq, ok := d.Snapshot().Inquiry(id)
	if !ok {
		return models.Inquiry{}, fmt.Errorf("inquiry %s not found", id)
	}
	if inq.Opened {
		return inq, nil
	}
	if err := d.inquiries.MarkOpened(ctx, id); err != nil {
		d.logger.Warn(ctx, "failed to mark inquiry opened", "id", id, "error", err)
		return inq, nil
	}
	inq.Opened = true
	d.Refresh(ctx)
	return inq, nil
}

func (d *Dashboard) UpdateInquiryStatus(ctx context.Context, id string, status models.InquiryStatus) error {
	return d.act(ctx, fmt.Sprintf("Inquiry marked as %s.", status), "Failed to update inquiry.", func(ctx context.Context) error {
		return d.inquiries.UpdateStatus(ctx, id, status)
	})
}

func (d *Dashboard) DeleteInquiry(ctx context.Context, id string) error {
	return d.act(ctx, "Inquiry deleted.", "Failed to delete inquiry.", func(ctx context.Context) error {
		return d.inquiries.Delete(ctx, id)
	})
}
