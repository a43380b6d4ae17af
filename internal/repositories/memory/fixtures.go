package memory

import (
	"context"
	"fmt"
	"time"

	domain "github.com/techfunding/api/internal/domain"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// SampleProjects returns the demo crowdfunding catalog used for local runs.
func SampleProjects() []domain.Project {
	return []domain.Project{
		{
			ID:          "1",
			Title:       "AI 기반 개인 비서 앱",
			Description: "일상 생활을 더욱 편리하게 만들어주는 AI 개인 비서입니다. 스케줄 관리, 알림, 음성 인식 등 다양한 기능을 제공합니다.",
			Category:    domain.CategoryAppService,
			MainImage:   "https://images.unsplash.com/photo-1551650975-87deedd944c3?w=400&h=300&fit=crop",
			Images:      []string{"https://images.unsplash.com/photo-1551650975-87deedd944c3?w=400&h=300&fit=crop"},
			Creator: domain.Creator{
				ID: "1", Name: "김개발", Email: "dev@example.com",
				Followers: 120, Following: 45, Likes: 89,
			},
			CurrentFunding: 3200000,
			FundingPeriod:  domain.FundingPeriod{Start: date(2024, time.January, 1), End: date(2024, time.March, 31)},
			Rewards: []domain.Reward{
				{
					ID:              "1",
					Name:            "얼리버드 리워드",
					Description:     "앱 출시 후 1개월 이내에 다운로드 가능한 베타 버전",
					Amount:          domain.FundingAmount,
					DeliveryMethod:  "앱스토어 링크",
					DeliveryDate:    date(2024, time.April, 1),
					MaxQuantity:     100,
					CurrentQuantity: 45,
				},
				{
					ID:              "2",
					Name:            "프리미엄 리워드",
					Description:     "베타 버전 + 추가 기능 3개월 무료 이용권",
					Amount:          domain.FundingAmount,
					DeliveryMethod:  "앱스토어 링크 + 이메일",
					DeliveryDate:    date(2024, time.April, 1),
					MaxQuantity:     50,
					CurrentQuantity: 23,
				},
			},
			Status:    domain.ProjectStatusActive,
			CreatedAt: date(2024, time.January, 1),
			UpdatedAt: date(2024, time.January, 15),
		},
		{
			ID:          "2",
			Title:       "프로젝트 관리 노션 템플릿",
			Description: "팀 프로젝트 관리를 위한 완벽한 노션 템플릿입니다. 태스크 관리, 일정 추적, 팀 협업을 위한 모든 기능이 포함되어 있습니다.",
			Category:    domain.CategoryNotionTemplate,
			MainImage:   "https://images.unsplash.com/photo-1551288049-bebda4e38f71?w=400&h=300&fit=crop",
			Images:      []string{"https://images.unsplash.com/photo-1551288049-bebda4e38f71?w=400&h=300&fit=crop"},
			Creator: domain.Creator{
				ID: "2", Name: "이디자인", Email: "design@example.com",
				Followers: 89, Following: 23, Likes: 156,
			},
			CurrentFunding: 850000,
			FundingPeriod:  domain.FundingPeriod{Start: date(2024, time.January, 15), End: date(2024, time.February, 15)},
			Status:         domain.ProjectStatusActive,
			CreatedAt:      date(2024, time.January, 15),
			UpdatedAt:      date(2024, time.January, 20),
		},
		{
			ID:          "3",
			Title:       "자동화 워크플로우 도구",
			Description: "반복 작업을 자동화하는 강력한 워크플로우 도구입니다. 복잡한 업무 프로세스를 간단하게 자동화할 수 있습니다.",
			Category:    domain.CategoryAutomationTool,
			MainImage:   "https://images.unsplash.com/photo-1518709268805-4e9042af2176?w=400&h=300&fit=crop",
			Images:      []string{"https://images.unsplash.com/photo-1518709268805-4e9042af2176?w=400&h=300&fit=crop"},
			Creator: domain.Creator{
				ID: "3", Name: "박자동화", Email: "auto@example.com",
				Followers: 234, Following: 67, Likes: 445,
			},
			CurrentFunding: 2100000,
			FundingPeriod:  domain.FundingPeriod{Start: date(2024, time.January, 10), End: date(2024, time.April, 10)},
			Status:         domain.ProjectStatusActive,
			CreatedAt:      date(2024, time.January, 10),
			UpdatedAt:      date(2024, time.January, 25),
		},
		{
			ID:          "4",
			Title:       "UI/UX 디자인 시스템",
			Description: "일관된 디자인을 위한 완벽한 UI/UX 디자인 시스템입니다. 컴포넌트, 아이콘, 색상 팔레트가 모두 포함되어 있습니다.",
			Category:    domain.CategoryDesignResource,
			MainImage:   "https://images.unsplash.com/photo-1561070791-2526d30994b5?w=400&h=300&fit=crop",
			Images:      []string{"https://images.unsplash.com/photo-1561070791-2526d30994b5?w=400&h=300&fit=crop"},
			Creator: domain.Creator{
				ID: "4", Name: "최디자인", Email: "ui@example.com",
				Followers: 567, Following: 123, Likes: 789,
			},
			CurrentFunding: 1800000,
			FundingPeriod:  domain.FundingPeriod{Start: date(2024, time.January, 5), End: date(2024, time.March, 5)},
			Status:         domain.ProjectStatusActive,
			CreatedAt:      date(2024, time.January, 5),
			UpdatedAt:      date(2024, time.January, 18),
		},
	}
}

// SampleProducts returns the demo marketplace catalog used for local runs.
func SampleProducts() []domain.Product {
	return []domain.Product{
		{
			ID:            "1",
			Title:         "AI 기반 개인 비서 앱",
			Description:   "일상 생활을 더욱 편리하게 만들어주는 AI 개인 비서 앱입니다. 스케줄 관리, 알림, 음성 인식 등 다양한 기능을 제공합니다.",
			Category:      domain.CategoryAppService,
			Price:         29000,
			OriginalPrice: 49000,
			MainImage:     "https://images.unsplash.com/photo-1551650975-87deedd944c3?w=400&h=300&fit=crop",
			Images:        []string{"https://images.unsplash.com/photo-1551650975-87deedd944c3?w=400&h=300&fit=crop"},
			Creator: domain.Creator{
				ID: "1", Name: "김개발", Email: "dev@example.com",
				Followers: 120, Following: 45, Likes: 89,
			},
			Rating:      4.8,
			ReviewCount: 156,
			SalesCount:  2340,
			Fulfillment: domain.FulfillmentDigital,
			Tags:        []string{"AI", "앱", "자동화", "생산성"},
			Status:      domain.ProductStatusActive,
			CreatedAt:   date(2024, time.January, 1),
			UpdatedAt:   date(2024, time.January, 15),
		},
		{
			ID:          "2",
			Title:       "프로젝트 관리 노션 템플릿",
			Description: "팀 프로젝트 관리를 위한 완벽한 노션 템플릿입니다. 태스크 관리, 일정 추적, 팀 협업을 위한 모든 기능이 포함되어 있습니다.",
			Category:    domain.CategoryNotionTemplate,
			Price:       15000,
			MainImage:   "https://images.unsplash.com/photo-1551288049-bebda4e38f71?w=400&h=300&fit=crop",
			Images:      []string{"https://images.unsplash.com/photo-1551288049-bebda4e38f71?w=400&h=300&fit=crop"},
			Creator: domain.Creator{
				ID: "2", Name: "이디자인", Email: "design@example.com",
				Followers: 89, Following: 23, Likes: 156,
			},
			Rating:      4.9,
			ReviewCount: 89,
			SalesCount:  1200,
			Fulfillment: domain.FulfillmentDigital,
			Tags:        []string{"노션", "템플릿", "프로젝트관리", "협업"},
			Status:      domain.ProductStatusActive,
			CreatedAt:   date(2024, time.January, 15),
			UpdatedAt:   date(2024, time.January, 20),
		},
		{
			ID:            "3",
			Title:         "자동화 워크플로우 도구",
			Description:   "반복 작업을 자동화하는 강력한 워크플로우 도구입니다. 복잡한 업무 프로세스를 간단하게 자동화할 수 있습니다.",
			Category:      domain.CategoryAutomationTool,
			Price:         45000,
			OriginalPrice: 69000,
			MainImage:     "https://images.unsplash.com/photo-1518709268805-4e9042af2176?w=400&h=300&fit=crop",
			Images:        []string{"https://images.unsplash.com/photo-1518709268805-4e9042af2176?w=400&h=300&fit=crop"},
			Creator: domain.Creator{
				ID: "3", Name: "박자동화", Email: "auto@example.com",
				Followers: 234, Following: 67, Likes: 445,
			},
			Rating:      4.7,
			ReviewCount: 234,
			SalesCount:  890,
			Fulfillment: domain.FulfillmentDigital,
			Tags:        []string{"자동화", "워크플로우", "생산성", "업무효율"},
			Status:      domain.ProductStatusActive,
			CreatedAt:   date(2024, time.January, 10),
			UpdatedAt:   date(2024, time.January, 25),
		},
		{
			ID:          "4",
			Title:       "UI/UX 디자인 시스템",
			Description: "일관된 디자인을 위한 완벽한 UI/UX 디자인 시스템입니다. 컴포넌트, 아이콘, 색상 팔레트가 모두 포함되어 있습니다.",
			Category:    domain.CategoryDesignResource,
			Price:       35000,
			MainImage:   "https://images.unsplash.com/photo-1561070791-2526d30994b5?w=400&h=300&fit=crop",
			Images:      []string{"https://images.unsplash.com/photo-1561070791-2526d30994b5?w=400&h=300&fit=crop"},
			Creator: domain.Creator{
				ID: "4", Name: "최디자인", Email: "ui@example.com",
				Followers: 567, Following: 123, Likes: 789,
			},
			Rating:      4.9,
			ReviewCount: 445,
			SalesCount:  3200,
			Fulfillment: domain.FulfillmentDigital,
			Tags:        []string{"디자인", "UI/UX", "컴포넌트", "시스템"},
			Status:      domain.ProductStatusActive,
			CreatedAt:   date(2024, time.January, 5),
			UpdatedAt:   date(2024, time.January, 18),
		},
	}
}

// SampleQuestions returns the demo QnA threads used for local runs.
func SampleQuestions() []domain.Question {
	return []domain.Question{
		{
			ID:        "1",
			ProjectID: "1",
			Type:      domain.QuestionTypeTechnical,
			Title:     "리워드 배송 문의",
			Content:   "안녕하세요! AI 그림 그리기 앱 프로젝트에 후원했습니다. 리워드 배송이 언제 될까요? 그리고 배송 추적은 어떻게 확인할 수 있나요?",
			Author:    "김후원",
			IsPrivate: false,
			Images:    []string{"https://images.unsplash.com/photo-1551650975-87deedd944c3?w=300&h=200&fit=crop"},
			Status:    domain.QuestionStatusAnswered,
			Answers: []domain.Answer{
				{
					ID:        "1",
					Content:   "안녕하세요! 리워드 배송에 대해 답변드리겠습니다. 현재 프로젝트가 성공적으로 완료되어 리워드 제작이 진행 중입니다. 예상 배송일은 3월 15일이며, 배송 시작 시 이메일로 추적 번호를 발송해드리겠습니다. 추가 문의사항이 있으시면 언제든 연락주세요!",
					Author:    "김창작",
					IsCreator: true,
					Likes:     5,
					Dislikes:  0,
					CreatedAt: date(2024, time.February, 16),
				},
			},
			CreatedAt: date(2024, time.February, 15),
			UpdatedAt: date(2024, time.February, 16),
		},
	}
}

// Seed fills the repositories with the sample catalog. It is used by the demo
// server and by handler tests; seeding an already populated store fails fast.
func Seed(ctx context.Context, projects *ProjectRepository, products *ProductRepository, questions *QuestionRepository) error {
	for _, project := range SampleProjects() {
		if _, err := projects.Insert(ctx, project); err != nil {
			return fmt.Errorf("memory: seed project %s: %w", project.ID, err)
		}
	}
	for _, product := range SampleProducts() {
		if _, err := products.Insert(ctx, product); err != nil {
			return fmt.Errorf("memory: seed product %s: %w", product.ID, err)
		}
	}
	for _, question := range SampleQuestions() {
		if _, err := questions.Insert(ctx, question); err != nil {
			return fmt.Errorf("memory: seed question %s: %w", question.ID, err)
		}
	}
	return nil
}
