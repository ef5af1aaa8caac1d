package ui_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pakuni/go-pakuni/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// keysToCheck lists every translation key defined in config.go.
var keysToCheck = []string{
	config.TKeyWinTitle,
	config.TKeyWinTests,
	config.TKeyWinCountdown,
	config.TKeyWinMerit,
	config.TKeyMenuRefresh,
	config.TKeyMenuSettings,
	config.TKeyMenuCountdown,
	config.TKeyMenuMerit,
	config.TKeyTrayStatus,
	config.TKeyTrayToday,
	config.TKeyTrayNone,
	config.TKeyNotifStart,
	config.TKeyNotifSuccess,
	config.TKeyNotifError,
	config.TKeyModeBuiltin,
	config.TKeyModeWeb,
	config.TKeyLblLanguage,
	config.TKeyHelpLanguage,
	config.TKeyLblMinutes,
	config.TKeyLblRefresh,
	config.TKeyHelpInterval,
	config.TKeyLblPort,
	config.TKeyHelpPort,
	config.TKeyLblGeneral,
	config.TKeyLblEnableRem,
	config.TKeyUnitDays,
	config.TKeyUnitHours,
	config.TKeyUnitMinutes,
	config.TKeyDirBefore,
	config.TKeyDirAfter,
	config.TKeyLblNotif,
	config.TKeyLblStartDay,
	config.TKeyBtnSave,
	config.TKeyBtnCancel,
	config.TKeyLblFooter,
	config.TKeyLblURL,
	config.TKeyHelpURL,
	config.TKeyLblUser,
	config.TKeyLblPass,
	config.TKeyLblSource,
	config.TKeyEvtSummary,
	config.TKeyColTest,
	config.TKeyColDate,
	config.TKeyColDays,
	config.TKeyFormatDate,
	config.TKeyCntDays,
	config.TKeyCntHours,
	config.TKeyCntMinutes,
	config.TKeyCntSeconds,
	config.TKeyCntExpired,
	config.TKeyBtnEdit,
	config.TKeyEditorTitle,
	config.TKeyLblDay,
	config.TKeyLblMonth,
	config.TKeyLblYear,
	config.TKeyErrDayRange,
	config.TKeyErrMonth,
	config.TKeyErrYearRange,
	config.TKeyErrNotADate,
	config.TKeyErrSaveFail,
	config.TKeyLblProgram,
	config.TKeyLblStudent,
	config.TKeyLblMatricObt,
	config.TKeyLblMatricTot,
	config.TKeyLblInterObt,
	config.TKeyLblInterTot,
	config.TKeyLblTestObt,
	config.TKeyLblTestTot,
	config.TKeyBtnCompute,
	config.TKeyBtnCopyCard,
	config.TKeyLblAggregate,
	config.TKeyErrScores,
	config.TKeyErrPortReq,
	config.TKeyErrPortNum,
	config.TKeyErrPortRange,
}

// TestI18nIntegrity ensures that every translation key defined in config.go
// actually exists in each locale JSON file.
func TestI18nIntegrity(t *testing.T) {
	locales := []string{"active.en.json", "active.ur.json"}

	for _, locale := range locales {
		t.Run(locale, func(t *testing.T) {
			definedKeys := make(map[string]bool)
			for _, k := range keysToCheck {
				definedKeys[k] = true
			}

			// Adjust path if running test from internal/ui or root
			path := filepath.Join("locales", locale)
			content, err := os.ReadFile(path)
			if os.IsNotExist(err) {
				// Fallback for running tests from different CWD
				path = filepath.Join("..", "..", "internal", "ui", "locales", locale)
				content, err = os.ReadFile(path)
			}
			require.NoErrorf(t, err, "Must load %s", locale)

			var jsonMap map[string]interface{}
			err = json.Unmarshal(content, &jsonMap)
			require.NoError(t, err, "JSON must be valid")

			// Verify consistency
			for key := range definedKeys {
				_, exists := jsonMap[key]
				assert.Truef(t, exists, "Key '%s' defined in config.go is missing in %s", key, locale)
			}

			// Check for orphan keys in JSON (keys that exist in JSON but not in Go)
			for jsonKey := range jsonMap {
				if strings.HasPrefix(jsonKey, "_") {
					continue
				}
				_, exists := definedKeys[jsonKey]
				if !exists {
					t.Logf("Warning: Key '%s' exists in JSON but is not checked in the test suite (might be unused)", jsonKey)
				}
			}
		})
	}
}
