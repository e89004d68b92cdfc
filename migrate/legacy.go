package migrate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// LegacyAppName is the folder the previous, file-based version of the app
// kept its JSON data in.
const LegacyAppName = "swingtrade-pro"

// ErrNoLegacyData means discovery found nothing worth migrating.
var ErrNoLegacyData = errors.New("no legacy data found")

// DefaultLegacyDir returns %APPDATA%/swingtrade-pro, or the platform user
// config directory when APPDATA is unset.
func DefaultLegacyDir() (string, error) {
	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, LegacyAppName), nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate legacy folder: %w", err)
	}
	return filepath.Join(base, LegacyAppName), nil
}

// LoadLegacyFolder reads trades.json, accounts.json, plan.json and
// macroEvents.json from dir. A missing or unreadable file leaves its
// collection empty without stopping the others. ErrNoLegacyData is returned
// when dir does not exist or none of the files hold usable data.
func LoadLegacyFolder(dir string, log logrus.FieldLogger) (Payload, error) {
	log = log.WithField("dir", dir)

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		log.Info("legacy folder not found")
		return Payload{}, fmt.Errorf("%w: %s", ErrNoLegacyData, dir)
	}

	var p Payload
	if v, ok := readLegacyFile(dir, "trades.json", log); ok {
		p.Trades = records(v)
	}
	if v, ok := readLegacyFile(dir, "accounts.json", log); ok {
		p.Accounts = records(v)
	}
	if v, ok := readLegacyFile(dir, "plan.json", log); ok {
		p.Plan = object(v)
	}
	if v, ok := readLegacyFile(dir, "macroEvents.json", log); ok {
		p.MacroEvents = records(v)
	}

	if p.Empty() {
		log.Info("no data in legacy folder")
		return Payload{}, fmt.Errorf("%w: %s", ErrNoLegacyData, dir)
	}

	log.WithFields(logrus.Fields{
		"accounts":     len(p.Accounts),
		"trades":       len(p.Trades),
		"macro_events": len(p.MacroEvents),
		"plan":         p.Plan != nil,
	}).Info("legacy data loaded")
	return p, nil
}

func readLegacyFile(dir, name string, log logrus.FieldLogger) (any, bool) {
	path := filepath.Join(dir, name)
	f, err := os.Open(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.WithError(err).WithField("file", name).Warn("cannot read legacy file")
		}
		return nil, false
	}
	defer f.Close()

	var v any
	if err := decodeJSON(f, &v); err != nil {
		log.WithError(err).WithField("file", name).Warn("invalid legacy file")
		return nil, false
	}
	return v, true
}
