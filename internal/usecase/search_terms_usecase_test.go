package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FestivalMarket-App/internal/domain/model"
	repoImpl "FestivalMarket-App/internal/repository"
)

func TestSearchTermsUseCase(t *testing.T) {
	ctx := context.Background()
	defaults := []string{"Rewe", "EDEKA"}
	sessions := repoImpl.NewMemorySessionRepository(time.Hour)
	uc := NewSearchTermsUseCase(sessions, defaults)

	t.Run("初回アクセスは既定値のコピー", func(t *testing.T) {
		res, err := uc.List(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, []string{"Rewe", "EDEKA"}, res.SearchTerms)
	})

	t.Run("追加は前後の空白を除く", func(t *testing.T) {
		res, err := uc.Add(ctx, "s1", "  Globus ")
		require.NoError(t, err)
		assert.True(t, res.Success)
		assert.Equal(t, "Suchbegriff 'Globus' hinzugefügt", res.Message)
		assert.Equal(t, []string{"Rewe", "EDEKA", "Globus"}, res.SearchTerms)

		// 既定値は変更されない
		other, err := uc.List(ctx, "s2")
		require.NoError(t, err)
		assert.Equal(t, []string{"Rewe", "EDEKA"}, other.SearchTerms)
	})

	t.Run("空と重複は検証エラー", func(t *testing.T) {
		var vErr *model.ValidationError

		_, err := uc.Add(ctx, "s1", "   ")
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "Leerer Suchbegriff", vErr.Message)

		_, err = uc.Add(ctx, "s1", "Rewe")
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Message, "bereits vorhanden")
	})

	t.Run("削除", func(t *testing.T) {
		res, err := uc.Remove(ctx, "s1", 0)
		require.NoError(t, err)
		assert.Equal(t, "Suchbegriff 'Rewe' entfernt", res.Message)
		assert.Equal(t, []string{"EDEKA", "Globus"}, res.SearchTerms)

		var vErr *model.ValidationError
		_, err = uc.Remove(ctx, "s1", 2)
		assert.ErrorAs(t, err, &vErr)
		_, err = uc.Remove(ctx, "s1", -1)
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("リセットは最新の結果IDを維持する", func(t *testing.T) {
		session, err := sessions.Get(ctx, "s1")
		require.NoError(t, err)
		session.LastResultID = "r1"
		require.NoError(t, sessions.Save(ctx, session))

		res, err := uc.Reset(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, []string{"Rewe", "EDEKA"}, res.SearchTerms)

		session, err = sessions.Get(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, "r1", session.LastResultID)
	})
}
