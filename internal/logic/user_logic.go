package logic

import (
	"context"
	"fmt"
	"strings"

	"github.com/Anamiiikka/fundhive/internal/apperr"
	"github.com/Anamiiikka/fundhive/internal/logger"
	"github.com/Anamiiikka/fundhive/internal/model"
)

// UserLogic 用户目录，外部身份首次写操作时惰性建档
type UserLogic struct {
	store UserStore
}

// NewUserLogic 创建用户逻辑
func NewUserLogic(store UserStore) *UserLogic {
	return &UserLogic{store: store}
}

// Ensure 按外部身份ID查找用户，不存在则创建。
// 用户名由显示名派生（去空格转小写），冲突时追加数字后缀。
func (l *UserLogic) Ensure(ctx context.Context, externalID, name, email, avatarURL string) (*model.User, error) {
	if externalID == "" {
		return nil, apperr.Unauthorized("User ID required")
	}

	existing, err := l.store.FindUserByExternalID(ctx, externalID)
	if err == nil {
		return existing, nil
	}
	if apperr.KindOf(err) != apperr.KindNotFound {
		return nil, err
	}

	username, err := l.deriveUsername(ctx, name)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ExternalID: externalID,
		Username:   username,
		Name:       name,
		Email:      email,
		AvatarURL:  avatarURL,
	}
	if err := l.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	logger.Info("User %s created with username %s", externalID, username)
	return user, nil
}

func (l *UserLogic) deriveUsername(ctx context.Context, name string) (string, error) {
	base := strings.ToLower(strings.Join(strings.Fields(name), ""))
	if base == "" {
		base = "user"
	}

	candidate := base
	for counter := 1; ; counter++ {
		_, err := l.store.FindUserByUsername(ctx, candidate)
		if apperr.KindOf(err) == apperr.KindNotFound {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
		candidate = fmt.Sprintf("%s%d", base, counter)
	}
}
