package businessflow

import (
	"testing"

	"github.com/rcsuite/console/models"
	"github.com/rcsuite/console/utils"
	"github.com/stretchr/testify/assert"
)

func TestValidateTemplateContent_PlainText(t *testing.T) {
	content := models.TemplateContent{Text: utils.ToPtr("Hello from Acme")}
	assert.NoError(t, ValidateTemplateContent(models.TemplateTypePlainText, content))

	assert.ErrorIs(t,
		ValidateTemplateContent(models.TemplateTypePlainText, models.TemplateContent{}),
		ErrTemplateTextRequired)

	empty := models.TemplateContent{Text: utils.ToPtr("")}
	assert.ErrorIs(t,
		ValidateTemplateContent(models.TemplateTypePlainText, empty),
		ErrTemplateTextRequired)
}

func TestValidateTemplateContent_TextWithActions(t *testing.T) {
	content := models.TemplateContent{
		Text: utils.ToPtr("Your order is ready"),
		Suggestions: []models.Suggestion{
			{Kind: "reply", Text: "Track it"},
		},
	}
	assert.NoError(t, ValidateTemplateContent(models.TemplateTypeTextWithActions, content))

	noSuggestions := models.TemplateContent{Text: utils.ToPtr("Your order is ready")}
	assert.ErrorIs(t,
		ValidateTemplateContent(models.TemplateTypeTextWithActions, noSuggestions),
		ErrSuggestionsRequired)

	noText := models.TemplateContent{
		Suggestions: []models.Suggestion{{Kind: "reply", Text: "Track it"}},
	}
	assert.ErrorIs(t,
		ValidateTemplateContent(models.TemplateTypeTextWithActions, noText),
		ErrTemplateTextRequired)
}

func TestValidateTemplateContent_RichCard(t *testing.T) {
	content := models.TemplateContent{
		CardTitle: utils.ToPtr("Summer Sale"),
		CardMedia: utils.ToPtr("0f9a1a6e-9df7-4e6c-94d0-2b7b8f6f1a11"),
	}
	assert.NoError(t, ValidateTemplateContent(models.TemplateTypeRichCard, content))

	noTitle := models.TemplateContent{CardMedia: utils.ToPtr("0f9a1a6e-9df7-4e6c-94d0-2b7b8f6f1a11")}
	assert.ErrorIs(t,
		ValidateTemplateContent(models.TemplateTypeRichCard, noTitle),
		ErrCardTitleRequired)

	noMedia := models.TemplateContent{CardTitle: utils.ToPtr("Summer Sale")}
	assert.ErrorIs(t,
		ValidateTemplateContent(models.TemplateTypeRichCard, noMedia),
		ErrCardMediaRequired)
}

func TestValidateTemplateContent_Carousel(t *testing.T) {
	content := models.TemplateContent{
		Contents: []models.CarouselCard{
			{CardTitle: "Sneakers"},
			{CardTitle: "Sandals"},
		},
	}
	assert.NoError(t, ValidateTemplateContent(models.TemplateTypeCarousel, content))

	oneCard := models.TemplateContent{
		Contents: []models.CarouselCard{{CardTitle: "Sneakers"}},
	}
	assert.ErrorIs(t,
		ValidateTemplateContent(models.TemplateTypeCarousel, oneCard),
		ErrCarouselCardsRequired)

	var tooMany models.TemplateContent
	for i := 0; i < 11; i++ {
		tooMany.Contents = append(tooMany.Contents, models.CarouselCard{CardTitle: "Card"})
	}
	assert.ErrorIs(t,
		ValidateTemplateContent(models.TemplateTypeCarousel, tooMany),
		ErrCarouselCardsRequired)

	untitled := models.TemplateContent{
		Contents: []models.CarouselCard{
			{CardTitle: "Sneakers"},
			{CardTitle: ""},
		},
	}
	assert.ErrorIs(t,
		ValidateTemplateContent(models.TemplateTypeCarousel, untitled),
		ErrCardTitleRequired)
}

func TestValidateTemplateContent_InvalidType(t *testing.T) {
	assert.ErrorIs(t,
		ValidateTemplateContent(models.TemplateType("video"), models.TemplateContent{}),
		ErrTemplateInvalidType)
}
