package logic

import (
	"context"

	"github.com/Anamiiikka/fundhive/internal/apperr"
	"github.com/Anamiiikka/fundhive/internal/model"
)

// EngagementLogic 点赞与评论
type EngagementLogic struct {
	store ProjectStore
}

// NewEngagementLogic 创建互动逻辑
func NewEngagementLogic(store ProjectStore) *EngagementLogic {
	return &EngagementLogic{store: store}
}

// ToggleLike 点赞开关：已点赞则取消，未点赞则添加。
// 返回更新后的项目和本次操作后是否处于点赞状态。
func (l *EngagementLogic) ToggleLike(ctx context.Context, projectID, userID string) (*model.Project, bool, error) {
	if userID == "" {
		return nil, false, apperr.Validation("User ID is required")
	}

	var liked bool
	project, err := l.store.UpdateProject(ctx, projectID, func(p *model.Project) error {
		if p.HasLike(userID) {
			next := p.Likes[:0:0]
			for _, id := range p.Likes {
				if id != userID {
					next = append(next, id)
				}
			}
			p.Likes = next
			liked = false
		} else {
			p.Likes = append(p.Likes, userID)
			liked = true
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return project, liked, nil
}

// AddComment 追加评论
func (l *EngagementLogic) AddComment(ctx context.Context, projectID, authorID, content string) (*model.Project, error) {
	if authorID == "" {
		return nil, apperr.Validation("User ID is required")
	}
	if content == "" {
		return nil, apperr.Validation("Comment content is required")
	}

	return l.store.UpdateProject(ctx, projectID, func(p *model.Project) error {
		p.Comments = append(p.Comments, model.Comment{
			ProjectID: projectID,
			AuthorID:  authorID,
			Content:   content,
		})
		return nil
	})
}
