package handlers

import (
	"time"

	domain "github.com/techfunding/api/internal/domain"
	"github.com/techfunding/api/internal/services"
)

type creatorPayload struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Followers int    `json:"followers"`
	Following int    `json:"following"`
	Likes     int    `json:"likes"`
}

type rewardPayload struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	Amount          int64  `json:"amount"`
	DeliveryMethod  string `json:"deliveryMethod,omitempty"`
	DeliveryDate    string `json:"deliveryDate,omitempty"`
	MaxQuantity     int    `json:"maxQuantity"`
	CurrentQuantity int    `json:"currentQuantity"`
	SoldOut         bool   `json:"soldOut"`
}

type fundingPeriodPayload struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type projectPayload struct {
	ID              string               `json:"id"`
	Title           string               `json:"title"`
	Description     string               `json:"description"`
	Category        string               `json:"category"`
	MainImage       string               `json:"mainImage,omitempty"`
	Images          []string             `json:"images,omitempty"`
	Creator         creatorPayload       `json:"creator"`
	CurrentFunding  int64                `json:"currentFunding"`
	FundingGoal     int64                `json:"fundingGoal,omitempty"`
	ProgressPercent float64              `json:"progressPercent"`
	FundingPeriod   fundingPeriodPayload `json:"fundingPeriod"`
	DaysLeft        int                  `json:"daysLeft"`
	Rewards         []rewardPayload      `json:"rewards,omitempty"`
	Status          string               `json:"status"`
	CreatedAt       string               `json:"createdAt"`
	UpdatedAt       string               `json:"updatedAt,omitempty"`
}

type productPayload struct {
	ID              string         `json:"id"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Category        string         `json:"category"`
	Price           int64          `json:"price"`
	OriginalPrice   int64          `json:"originalPrice,omitempty"`
	DiscountPercent int            `json:"discountPercent,omitempty"`
	MainImage       string         `json:"mainImage,omitempty"`
	Images          []string       `json:"images,omitempty"`
	Creator         creatorPayload `json:"creator"`
	Rating          float64        `json:"rating"`
	ReviewCount     int            `json:"reviewCount"`
	SalesCount      int            `json:"salesCount"`
	DeliveryMethod  string         `json:"deliveryMethod,omitempty"`
	Fulfillment     string         `json:"fulfillment,omitempty"`
	Tags            []string       `json:"tags,omitempty"`
	Status          string         `json:"status"`
	CreatedAt       string         `json:"createdAt"`
	UpdatedAt       string         `json:"updatedAt,omitempty"`
}

type categoryPayload struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Icon             string `json:"icon,omitempty"`
	SupportsFunding  bool   `json:"supportsFunding"`
	SupportsPurchase bool   `json:"supportsPurchase"`
}

type answerPayload struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	Author    string `json:"author"`
	IsCreator bool   `json:"isCreator"`
	Likes     int    `json:"likes"`
	Dislikes  int    `json:"dislikes"`
	CreatedAt string `json:"createdAt"`
}

type questionPayload struct {
	ID        string          `json:"id"`
	ProjectID string          `json:"projectId"`
	Type      string          `json:"type"`
	Title     string          `json:"title"`
	Content   string          `json:"content"`
	Author    string          `json:"author"`
	IsPrivate bool            `json:"isPrivate"`
	Images    []string        `json:"images,omitempty"`
	Status    string          `json:"status"`
	Answers   []answerPayload `json:"answers"`
	CreatedAt string          `json:"createdAt"`
	UpdatedAt string          `json:"updatedAt,omitempty"`
}

type reviewPayload struct {
	ID        string   `json:"id"`
	ProductID string   `json:"productId"`
	Author    string   `json:"author"`
	Rating    int      `json:"rating"`
	Content   string   `json:"content"`
	Images    []string `json:"images,omitempty"`
	CreatedAt string   `json:"createdAt"`
}

type fundingSessionPayload struct {
	ID           string `json:"id"`
	ProjectID    string `json:"projectId"`
	ProjectTitle string `json:"projectTitle"`
	RewardID     string `json:"rewardId,omitempty"`
	RewardName   string `json:"rewardName,omitempty"`
	Amount       int64  `json:"amount"`
	State        string `json:"state"`
	Message      string `json:"message,omitempty"`
	FundingID    string `json:"fundingId,omitempty"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt,omitempty"`
}

type purchasePayload struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	Amount    int64  `json:"amount"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}

func buildCreatorPayload(creator domain.Creator) creatorPayload {
	return creatorPayload{
		ID:        creator.ID,
		Name:      creator.Name,
		Email:     creator.Email,
		Followers: creator.Followers,
		Following: creator.Following,
		Likes:     creator.Likes,
	}
}

func buildRewardPayload(reward domain.Reward) rewardPayload {
	return rewardPayload{
		ID:              reward.ID,
		Name:            reward.Name,
		Description:     reward.Description,
		Amount:          reward.Amount,
		DeliveryMethod:  reward.DeliveryMethod,
		DeliveryDate:    formatTime(reward.DeliveryDate),
		MaxQuantity:     reward.MaxQuantity,
		CurrentQuantity: reward.CurrentQuantity,
		SoldOut:         reward.MaxQuantity > 0 && reward.CurrentQuantity >= reward.MaxQuantity,
	}
}

func buildProjectPayload(project domain.Project, now time.Time) projectPayload {
	rewards := make([]rewardPayload, 0, len(project.Rewards))
	for _, reward := range project.Rewards {
		rewards = append(rewards, buildRewardPayload(reward))
	}

	return projectPayload{
		ID:              project.ID,
		Title:           project.Title,
		Description:     project.Description,
		Category:        string(project.Category),
		MainImage:       project.MainImage,
		Images:          project.Images,
		Creator:         buildCreatorPayload(project.Creator),
		CurrentFunding:  project.CurrentFunding,
		FundingGoal:     project.FundingGoal,
		ProgressPercent: domain.ProgressPercent(project.CurrentFunding, project.FundingGoal),
		FundingPeriod: fundingPeriodPayload{
			Start: formatTime(project.FundingPeriod.Start),
			End:   formatTime(project.FundingPeriod.End),
		},
		DaysLeft:  domain.DaysLeft(project.FundingPeriod.End, now),
		Rewards:   rewards,
		Status:    string(project.Status),
		CreatedAt: formatTime(project.CreatedAt),
		UpdatedAt: formatTime(project.UpdatedAt),
	}
}

func buildProductPayload(product domain.Product) productPayload {
	return productPayload{
		ID:              product.ID,
		Title:           product.Title,
		Description:     product.Description,
		Category:        string(product.Category),
		Price:           product.Price,
		OriginalPrice:   product.OriginalPrice,
		DiscountPercent: domain.DiscountPercent(product.OriginalPrice, product.Price),
		MainImage:       product.MainImage,
		Images:          product.Images,
		Creator:         buildCreatorPayload(product.Creator),
		Rating:          product.Rating,
		ReviewCount:     product.ReviewCount,
		SalesCount:      product.SalesCount,
		DeliveryMethod:  string(product.DeliveryMethod),
		Fulfillment:     string(product.Fulfillment),
		Tags:            product.Tags,
		Status:          string(product.Status),
		CreatedAt:       formatTime(product.CreatedAt),
		UpdatedAt:       formatTime(product.UpdatedAt),
	}
}

func buildCategoryPayload(info domain.CategoryInfo) categoryPayload {
	return categoryPayload{
		ID:               string(info.ID),
		Name:             info.Name,
		Icon:             info.Icon,
		SupportsFunding:  info.SupportsFunding,
		SupportsPurchase: info.SupportsPurchase,
	}
}

func buildQuestionPayload(question domain.Question) questionPayload {
	answers := make([]answerPayload, 0, len(question.Answers))
	for _, answer := range question.Answers {
		answers = append(answers, answerPayload{
			ID:        answer.ID,
			Content:   answer.Content,
			Author:    answer.Author,
			IsCreator: answer.IsCreator,
			Likes:     answer.Likes,
			Dislikes:  answer.Dislikes,
			CreatedAt: formatTime(answer.CreatedAt),
		})
	}

	return questionPayload{
		ID:        question.ID,
		ProjectID: question.ProjectID,
		Type:      string(question.Type),
		Title:     question.Title,
		Content:   question.Content,
		Author:    question.Author,
		IsPrivate: question.IsPrivate,
		Images:    question.Images,
		Status:    string(question.Status),
		Answers:   answers,
		CreatedAt: formatTime(question.CreatedAt),
		UpdatedAt: formatTime(question.UpdatedAt),
	}
}

func buildReviewPayload(review domain.Review) reviewPayload {
	return reviewPayload{
		ID:        review.ID,
		ProductID: review.ProductID,
		Author:    review.Author,
		Rating:    review.Rating,
		Content:   review.Content,
		Images:    review.Images,
		CreatedAt: formatTime(review.CreatedAt),
	}
}

func buildFundingSessionPayload(session services.FundingSession) fundingSessionPayload {
	return fundingSessionPayload{
		ID:           session.ID,
		ProjectID:    session.ProjectID,
		ProjectTitle: session.ProjectTitle,
		RewardID:     session.RewardID,
		RewardName:   session.RewardName,
		Amount:       session.Amount,
		State:        string(session.State),
		Message:      session.Message,
		FundingID:    session.FundingID,
		CreatedAt:    formatTime(session.CreatedAt),
		UpdatedAt:    formatTime(session.UpdatedAt),
	}
}

func buildPurchasePayload(purchase domain.Purchase) purchasePayload {
	return purchasePayload{
		ID:        purchase.ID,
		ProductID: purchase.ProductID,
		Amount:    purchase.Amount,
		Status:    string(purchase.Status),
		CreatedAt: formatTime(purchase.CreatedAt),
	}
}
