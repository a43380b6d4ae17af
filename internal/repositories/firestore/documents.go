package firestore

import (
	"time"

	domain "github.com/techfunding/api/internal/domain"
)

type creatorDocument struct {
	ID        string `firestore:"id"`
	Name      string `firestore:"name"`
	Email     string `firestore:"email"`
	Followers int    `firestore:"followers"`
	Following int    `firestore:"following"`
	Likes     int    `firestore:"likes"`
}

type rewardDocument struct {
	ID              string    `firestore:"id"`
	Name            string    `firestore:"name"`
	Description     string    `firestore:"description"`
	Amount          int64     `firestore:"amount"`
	DeliveryMethod  string    `firestore:"deliveryMethod"`
	DeliveryDate    time.Time `firestore:"deliveryDate"`
	MaxQuantity     int       `firestore:"maxQuantity"`
	CurrentQuantity int       `firestore:"currentQuantity"`
}

type projectDocument struct {
	Title          string           `firestore:"title"`
	Description    string           `firestore:"description"`
	Category       string           `firestore:"category"`
	MainImage      string           `firestore:"mainImage"`
	Images         []string         `firestore:"images"`
	Creator        creatorDocument  `firestore:"creator"`
	CurrentFunding int64            `firestore:"currentFunding"`
	FundingGoal    int64            `firestore:"fundingGoal"`
	FundingStart   time.Time        `firestore:"fundingStart"`
	FundingEnd     time.Time        `firestore:"fundingEnd"`
	Rewards        []rewardDocument `firestore:"rewards"`
	Status         string           `firestore:"status"`
	CreatedAt      time.Time        `firestore:"createdAt"`
	UpdatedAt      time.Time        `firestore:"updatedAt"`
}

type productDocument struct {
	Title          string          `firestore:"title"`
	Description    string          `firestore:"description"`
	Category       string          `firestore:"category"`
	Price          int64           `firestore:"price"`
	OriginalPrice  int64           `firestore:"originalPrice"`
	MainImage      string          `firestore:"mainImage"`
	Images         []string        `firestore:"images"`
	Creator        creatorDocument `firestore:"creator"`
	Rating         float64         `firestore:"rating"`
	ReviewCount    int             `firestore:"reviewCount"`
	SalesCount     int             `firestore:"salesCount"`
	DeliveryMethod string          `firestore:"deliveryMethod"`
	Fulfillment    string          `firestore:"fulfillment"`
	Tags           []string        `firestore:"tags"`
	Status         string          `firestore:"status"`
	CreatedAt      time.Time       `firestore:"createdAt"`
	UpdatedAt      time.Time       `firestore:"updatedAt"`
}

type answerDocument struct {
	ID        string    `firestore:"id"`
	Content   string    `firestore:"content"`
	Author    string    `firestore:"author"`
	IsCreator bool      `firestore:"isCreator"`
	Likes     int       `firestore:"likes"`
	Dislikes  int       `firestore:"dislikes"`
	CreatedAt time.Time `firestore:"createdAt"`
}

type questionDocument struct {
	ProjectRef string           `firestore:"projectRef"`
	Type       string           `firestore:"type"`
	Title      string           `firestore:"title"`
	Content    string           `firestore:"content"`
	Author     string           `firestore:"author"`
	IsPrivate  bool             `firestore:"isPrivate"`
	Images     []string         `firestore:"images"`
	Status     string           `firestore:"status"`
	Answers    []answerDocument `firestore:"answers"`
	CreatedAt  time.Time        `firestore:"createdAt"`
	UpdatedAt  time.Time        `firestore:"updatedAt"`
}

type reviewDocument struct {
	ProductRef string    `firestore:"productRef"`
	Author     string    `firestore:"author"`
	Rating     int       `firestore:"rating"`
	Content    string    `firestore:"content"`
	Images     []string  `firestore:"images"`
	CreatedAt  time.Time `firestore:"createdAt"`
}

type fundingDocument struct {
	ProjectRef string    `firestore:"projectRef"`
	RewardID   string    `firestore:"rewardId"`
	Amount     int64     `firestore:"amount"`
	Status     string    `firestore:"status"`
	CreatedAt  time.Time `firestore:"createdAt"`
}

type purchaseDocument struct {
	ProductRef string    `firestore:"productRef"`
	Amount     int64     `firestore:"amount"`
	Status     string    `firestore:"status"`
	CreatedAt  time.Time `firestore:"createdAt"`
}

func encodeReview(review domain.Review) reviewDocument {
	return reviewDocument{
		ProductRef: productDocPath(review.ProductID),
		Author:     review.Author,
		Rating:     review.Rating,
		Content:    review.Content,
		Images:     review.Images,
		CreatedAt:  review.CreatedAt,
	}
}

func decodeReview(id string, doc reviewDocument) domain.Review {
	return domain.Review{
		ID:        id,
		ProductID: extractDocID(doc.ProductRef, productsCollection+"/"),
		Author:    doc.Author,
		Rating:    doc.Rating,
		Content:   doc.Content,
		Images:    doc.Images,
		CreatedAt: doc.CreatedAt,
	}
}

func encodeFunding(funding domain.Funding) fundingDocument {
	return fundingDocument{
		ProjectRef: projectDocPath(funding.ProjectID),
		RewardID:   funding.RewardID,
		Amount:     funding.Amount,
		Status:     string(funding.Status),
		CreatedAt:  funding.CreatedAt,
	}
}

func decodeFunding(id string, doc fundingDocument) domain.Funding {
	return domain.Funding{
		ID:        id,
		ProjectID: extractDocID(doc.ProjectRef, projectsCollection+"/"),
		RewardID:  doc.RewardID,
		Amount:    doc.Amount,
		Status:    domain.TransactionStatus(doc.Status),
		CreatedAt: doc.CreatedAt,
	}
}

func encodePurchase(purchase domain.Purchase) purchaseDocument {
	return purchaseDocument{
		ProductRef: productDocPath(purchase.ProductID),
		Amount:     purchase.Amount,
		Status:     string(purchase.Status),
		CreatedAt:  purchase.CreatedAt,
	}
}

func decodePurchase(id string, doc purchaseDocument) domain.Purchase {
	return domain.Purchase{
		ID:        id,
		ProductID: extractDocID(doc.ProductRef, productsCollection+"/"),
		Amount:    doc.Amount,
		Status:    domain.TransactionStatus(doc.Status),
		CreatedAt: doc.CreatedAt,
	}
}

func encodeProject(project domain.Project) projectDocument {
	rewards := make([]rewardDocument, 0, len(project.Rewards))
	for _, reward := range project.Rewards {
		rewards = append(rewards, rewardDocument(reward))
	}
	return projectDocument{
		Title:          project.Title,
		Description:    project.Description,
		Category:       string(project.Category),
		MainImage:      project.MainImage,
		Images:         project.Images,
		Creator:        creatorDocument(project.Creator),
		CurrentFunding: project.CurrentFunding,
		FundingGoal:    project.FundingGoal,
		FundingStart:   project.FundingPeriod.Start,
		FundingEnd:     project.FundingPeriod.End,
		Rewards:        rewards,
		Status:         string(project.Status),
		CreatedAt:      project.CreatedAt,
		UpdatedAt:      project.UpdatedAt,
	}
}

func decodeProject(id string, doc projectDocument) domain.Project {
	rewards := make([]domain.Reward, 0, len(doc.Rewards))
	for _, reward := range doc.Rewards {
		rewards = append(rewards, domain.Reward(reward))
	}
	return domain.Project{
		ID:             id,
		Title:          doc.Title,
		Description:    doc.Description,
		Category:       domain.Category(doc.Category),
		MainImage:      doc.MainImage,
		Images:         doc.Images,
		Creator:        domain.Creator(doc.Creator),
		CurrentFunding: doc.CurrentFunding,
		FundingGoal:    doc.FundingGoal,
		FundingPeriod:  domain.FundingPeriod{Start: doc.FundingStart, End: doc.FundingEnd},
		Rewards:        rewards,
		Status:         domain.ProjectStatus(doc.Status),
		CreatedAt:      doc.CreatedAt,
		UpdatedAt:      doc.UpdatedAt,
	}
}

func encodeProduct(product domain.Product) productDocument {
	return productDocument{
		Title:          product.Title,
		Description:    product.Description,
		Category:       string(product.Category),
		Price:          product.Price,
		OriginalPrice:  product.OriginalPrice,
		MainImage:      product.MainImage,
		Images:         product.Images,
		Creator:        creatorDocument(product.Creator),
		Rating:         product.Rating,
		ReviewCount:    product.ReviewCount,
		SalesCount:     product.SalesCount,
		DeliveryMethod: string(product.DeliveryMethod),
		Fulfillment:    string(product.Fulfillment),
		Tags:           product.Tags,
		Status:         string(product.Status),
		CreatedAt:      product.CreatedAt,
		UpdatedAt:      product.UpdatedAt,
	}
}

func decodeProduct(id string, doc productDocument) domain.Product {
	return domain.Product{
		ID:             id,
		Title:          doc.Title,
		Description:    doc.Description,
		Category:       domain.Category(doc.Category),
		Price:          doc.Price,
		OriginalPrice:  doc.OriginalPrice,
		MainImage:      doc.MainImage,
		Images:         doc.Images,
		Creator:        domain.Creator(doc.Creator),
		Rating:         doc.Rating,
		ReviewCount:    doc.ReviewCount,
		SalesCount:     doc.SalesCount,
		DeliveryMethod: domain.DeliveryMethod(doc.DeliveryMethod),
		Fulfillment:    domain.Fulfillment(doc.Fulfillment),
		Tags:           doc.Tags,
		Status:         domain.ProductStatus(doc.Status),
		CreatedAt:      doc.CreatedAt,
		UpdatedAt:      doc.UpdatedAt,
	}
}

func encodeQuestion(question domain.Question) questionDocument {
	answers := make([]answerDocument, 0, len(question.Answers))
	for _, answer := range question.Answers {
		answers = append(answers, answerDocument(answer))
	}
	return questionDocument{
		ProjectRef: projectDocPath(question.ProjectID),
		Type:       string(question.Type),
		Title:      question.Title,
		Content:    question.Content,
		Author:     question.Author,
		IsPrivate:  question.IsPrivate,
		Images:     question.Images,
		Status:     string(question.Status),
		Answers:    answers,
		CreatedAt:  question.CreatedAt,
		UpdatedAt:  question.UpdatedAt,
	}
}

func decodeQuestion(id string, doc questionDocument) domain.Question {
	answers := make([]domain.Answer, 0, len(doc.Answers))
	for _, answer := range doc.Answers {
		answers = append(answers, domain.Answer(answer))
	}
	return domain.Question{
		ID:        id,
		ProjectID: extractDocID(doc.ProjectRef, projectsCollection+"/"),
		Type:      domain.QuestionType(doc.Type),
		Title:     doc.Title,
		Content:   doc.Content,
		Author:    doc.Author,
		IsPrivate: doc.IsPrivate,
		Images:    doc.Images,
		Status:    domain.QuestionStatus(doc.Status),
		Answers:   answers,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}
