package alerts

import (
	"fmt"
	"log"
	"sync"
	"time"

	"odds-arb-scanner/internal/analysis"
	"odds-arb-scanner/internal/arb"
)

// Notifier handles alert notifications
type Notifier struct {
	mu         sync.Mutex
	lastAlerts map[string]time.Time // Dedupe alerts
	cooldown   time.Duration        // Minimum time between same alerts
}

// NewNotifier creates a new notifier
func NewNotifier(cooldown time.Duration) *Notifier {
	return &Notifier{
		lastAlerts: make(map[string]time.Time),
		cooldown:   cooldown,
	}
}

func (n *Notifier) shouldFire(key string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if lastTime, ok := n.lastAlerts[key]; ok {
		if time.Since(lastTime) < n.cooldown {
			return false
		}
	}
	n.lastAlerts[key] = time.Now()
	return true
}

// AlertArb sends an alert for a detected arbitrage opportunity. The
// dedupe key includes the leg sides: one event can carry several
// distinct double-chance pairs under the same market and line.
func (n *Notifier) AlertArb(opp arb.Opportunity) {
	key := fmt.Sprintf("arb-%s-%s-%.2f", opp.Key.EventID, opp.Key.Market, opp.Key.Line)
	for _, leg := range opp.Legs {
		key += "-" + string(leg.Side)
	}
	if !n.shouldFire(key) {
		return
	}

	log.Printf("ARB: %s", opp.Describe())
}

// AlertValue sends an alert for a best price beating consensus
func (n *Notifier) AlertValue(vb analysis.ValueBet) {
	key := fmt.Sprintf("value-%s-%s-%.2f-%s", vb.Key.EventID, vb.Key.Market, vb.Key.Line, vb.Side)
	if !n.shouldFire(key) {
		return
	}

	log.Printf("VALUE: %s vs %s %s %s %.2f@%s fair=%.2f edge=%.2f%%/%dbk",
		vb.HomeTeam, vb.AwayTeam, vb.Key.Market, vb.Side,
		vb.BestPrice, vb.Bookmaker, vb.FairPrice, vb.EdgePct, vb.BookCount)
}

// LogScan logs a scan completion
func (n *Notifier) LogScan(events, groups, arbs, values int) {
	log.Printf("Scan complete: %d events, %d groups, %d arbs, %d value spots", events, groups, arbs, values)
}

// LogError logs an error
func (n *Notifier) LogError(context string, err error) {
	log.Printf("ERROR [%s]: %v", context, err)
}

// LogStartup logs scanner startup
func (n *Notifier) LogStartup(config string) {
	log.Printf("Scanner started |%s", config)
}

// CleanupOldAlerts removes stale alert records
func (n *Notifier) CleanupOldAlerts() {
	n.mu.Lock()
	defer n.mu.Unlock()
	cutoff := time.Now().Add(-1 * time.Hour)
	for key, t := range n.lastAlerts {
		if t.Before(cutoff) {
			delete(n.lastAlerts, key)
		}
	}
}
