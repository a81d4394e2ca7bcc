package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bft-labs/savekeeper/internal/codec"
	"github.com/bft-labs/savekeeper/internal/domain"
	"github.com/bft-labs/savekeeper/internal/ports"
)

// Intervals groups the cadences of the orchestrator's timers.
type Intervals struct {
	Liveness      time.Duration
	Countdown     time.Duration
	StatusTimeout time.Duration
	Resolve       time.Duration
	Retention     time.Duration
	Debug         time.Duration
}

// DefaultIntervals returns the standard cadences.
func DefaultIntervals() Intervals {
	return Intervals{
		Liveness:      2 * time.Second,
		Countdown:     time.Second,
		StatusTimeout: 5 * time.Second,
		Resolve:       2 * time.Second,
		Retention:     time.Hour,
		Debug:         time.Second,
	}
}

func (iv Intervals) withDefaults() Intervals {
	def := DefaultIntervals()
	if iv.Liveness <= 0 {
		iv.Liveness = def.Liveness
	}
	if iv.Countdown <= 0 {
		iv.Countdown = def.Countdown
	}
	if iv.StatusTimeout <= 0 {
		iv.StatusTimeout = def.StatusTimeout
	}
	if iv.Resolve <= 0 {
		iv.Resolve = def.Resolve
	}
	if iv.Retention <= 0 {
		iv.Retention = def.Retention
	}
	if iv.Debug <= 0 {
		iv.Debug = def.Debug
	}
	return iv
}

// Options configures an Orchestrator. Store, Source, Process and SavePath
// are required.
type Options struct {
	ProcessName string

	// SavePath returns the live save location for a profile.
	SavePath func(profile int) string

	Store   ports.ArchiveStore
	Source  ports.SaveSource
	Process ports.ProcessQuery

	// Prefs persists user choices on every change. Optional.
	Prefs ports.PreferencesRepository

	// NewWatcher builds the archive directory watcher. onChange must be
	// wired to the watcher's change callback. Optional.
	NewWatcher func(onChange func()) ports.Watcher

	Sink      ports.EventSink
	Clock     ports.Clock
	Logger    ports.Logger
	Observer  StateObserver
	Intervals Intervals

	// Initial holds the preferences applied on Start.
	Initial domain.Preferences
}

// View is a read-only snapshot of orchestrator state.
type View struct {
	Status     domain.StatusRecord
	Liveness   domain.LivenessState
	Schedule   domain.ScheduleState
	Countdown  string
	Profile    int
	Retention  domain.RetentionPolicy
	AutoClean  bool
	DebugView  bool
	Selection  domain.Selection
	Entries    []string
	DebugLines []string
}

type request struct {
	apply func()
	done  chan struct{}
}

// timerSlot holds one cancellable timer or ticker. A nil channel never fires
// in a select, so an empty slot is a stopped timer.
type timerSlot struct {
	C    <-chan time.Time
	stop func()
}

func (s *timerSlot) set(c <-chan time.Time, stop func()) {
	s.clear()
	s.C, s.stop = c, stop
}

func (s *timerSlot) clear() {
	if s.stop != nil {
		s.stop()
	}
	s.C, s.stop = nil, nil
}

func (s *timerSlot) active() bool {
	return s.C != nil
}

// Orchestrator is the single actor that owns liveness, schedule and status.
// Every timer and every UI request is handled on its goroutine.
type Orchestrator struct {
	opts      Options
	iv        Intervals
	clock     ports.Clock
	sink      ports.EventSink
	logger    ports.Logger
	lifecycle *Lifecycle

	reqs    chan request
	changed chan struct{}

	mu   sync.RWMutex
	done chan struct{}

	// Owned by the actor goroutine.
	ctx       context.Context
	monitor   *Monitor
	sched     *Scheduler
	status    *StatusController
	retention *RetentionEngine
	debugLog  *DebugLog
	watcher   ports.Watcher

	profile   int
	policy    domain.RetentionPolicy
	autoClean bool
	selection domain.Selection
	entries   []string

	liveTick   timerSlot
	fireTimer  timerSlot
	countTick  timerSlot
	expire     timerSlot
	resolveTk  timerSlot
	retainTick timerSlot
	debugTick  timerSlot
}

// NewOrchestrator validates opts and builds an orchestrator in StateStopped.
func NewOrchestrator(opts Options) (*Orchestrator, error) {
	if opts.Store == nil || opts.Source == nil || opts.Process == nil || opts.SavePath == nil {
		return nil, fmt.Errorf("%w: store, source, process and save path are required", domain.ErrInvalidConfig)
	}
	if opts.Logger == nil {
		opts.Logger = nopLogger{}
	}
	if opts.Sink == nil {
		opts.Sink = nopSink{}
	}
	if opts.Clock == nil {
		opts.Clock = RealClock{}
	}
	if opts.ProcessName == "" {
		opts.ProcessName = "Balatro"
	}

	o := &Orchestrator{
		opts:    opts,
		iv:      opts.Intervals.withDefaults(),
		clock:   opts.Clock,
		sink:    opts.Sink,
		logger:  opts.Logger,
		reqs:    make(chan request),
		changed: make(chan struct{}, 1),
	}
	o.lifecycle = NewLifecycle(opts.Logger, opts.Observer)
	o.init(context.Background())
	return o, nil
}

// init resets actor state from the initial preferences.
func (o *Orchestrator) init(ctx context.Context) {
	now := o.clock.Now()
	p := o.opts.Initial

	o.ctx = ctx
	o.monitor = NewMonitor(o.opts.Process, o.opts.ProcessName, o.logger)
	o.status = NewStatusController(o.iv.StatusTimeout, o.logger, now)
	o.retention = NewRetentionEngine(o.opts.Store, o.logger)
	o.debugLog = NewDebugLog(DefaultDebugLogSize)

	o.profile = p.Profile
	if !domain.ValidProfile(o.profile) {
		o.profile = 1
	}
	o.policy = domain.RetentionPolicy(p.RetentionDays)
	if !o.policy.Valid() {
		o.policy = domain.DefaultRetention
	}
	minutes := p.IntervalMinutes
	if !validMinutes(minutes) {
		minutes = 1
	}
	o.sched = NewScheduler(minutes)
	if p.Autosave {
		_ = o.sched.Enable(now)
	}
	o.autoClean = p.AutoClean
}

// Start launches the actor loop. The first liveness poll runs before Start
// returns control to the loop.
func (o *Orchestrator) Start(ctx context.Context) error {
	if !o.lifecycle.CanStart() {
		return domain.ErrAlreadyStarted
	}
	if err := o.lifecycle.TransitionTo(StateStarting, "start requested"); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	o.lifecycle.SetCancel(cancel)

	done := make(chan struct{})
	o.mu.Lock()
	o.done = done
	o.mu.Unlock()

	if o.opts.NewWatcher != nil {
		o.watcher = o.opts.NewWatcher(o.ArchiveChanged)
		if err := o.watcher.Start(runCtx); err != nil {
			o.logger.Warn("archive watcher unavailable", ports.Err(err))
			o.watcher = nil
		}
	}

	o.lifecycle.Go(func() {
		defer close(done)
		defer func() {
			if r := recover(); r != nil {
				o.logger.Error("orchestrator loop panicked", ports.String("panic", fmt.Sprint(r)))
				_ = o.lifecycle.TransitionTo(StateCrashed, "panic")
			}
		}()
		o.run(runCtx)
	})

	return o.lifecycle.TransitionTo(StateRunning, "actor loop started")
}

// Stop cancels the actor loop and waits for it to exit.
func (o *Orchestrator) Stop() error {
	if !o.lifecycle.CanStop() {
		return domain.ErrNotStarted
	}
	if err := o.lifecycle.TransitionTo(StateStopping, "stop requested"); err != nil {
		return err
	}

	o.lifecycle.Cancel()
	if o.watcher != nil {
		o.watcher.Stop()
	}
	err := o.lifecycle.Wait(ShutdownTimeout)

	if terr := o.lifecycle.TransitionTo(StateStopped, "actor loop exited"); terr != nil && err == nil {
		err = terr
	}
	return err
}

// State returns the lifecycle state.
func (o *Orchestrator) State() State {
	return o.lifecycle.State()
}

// ArchiveChanged requests a list refresh. It never blocks and may be called
// from any goroutine.
func (o *Orchestrator) ArchiveChanged() {
	select {
	case o.changed <- struct{}{}:
	default:
	}
}

func (o *Orchestrator) run(ctx context.Context) {
	o.init(ctx)
	defer o.stopTimers()

	o.liveTick.set(o.clock.NewTicker(o.iv.Liveness))
	o.pollLiveness()
	if o.autoClean {
		o.retainTick.set(o.clock.NewTicker(o.iv.Retention))
		o.sweep()
	}
	o.refreshList()
	o.sink.OnStatus(o.status.Current())
	o.syncSchedule()

	o.logger.Info("orchestrator started",
		ports.String("process", o.monitor.Name()),
		ports.Int("profile", o.profile),
		ports.String("archive_dir", o.opts.Store.Dir()),
	)

	for {
		select {
		case <-ctx.Done():
			o.logger.Info("orchestrator stopped")
			return
		case req := <-o.reqs:
			req.apply()
			close(req.done)
		case <-o.liveTick.C:
			o.pollLiveness()
		case <-o.fireTimer.C:
			o.fireTimer.clear()
			o.fire()
		case <-o.countTick.C:
			o.sink.OnCountdown(o.sched.Countdown(o.clock.Now()))
		case <-o.expire.C:
			o.expire.clear()
			o.expireStatus()
		case <-o.resolveTk.C:
			if o.status.Resolve(o.clock.Now()) {
				o.syncStatus()
			}
		case <-o.retainTick.C:
			o.sweep()
		case <-o.debugTick.C:
			o.debugSnapshot()
		case <-o.changed:
			o.refreshList()
		}
	}
}

// expireStatus handles the expiry timer. An early tick re-arms the timer for
// the remaining time instead of dropping it.
func (o *Orchestrator) expireStatus() {
	if o.status.Expire(o.clock.Now()) {
		o.syncStatus()
		return
	}
	if at, ok := o.status.ExpireAt(); ok {
		o.expire.set(o.clock.NewTimer(at.Sub(o.clock.Now())))
	}
}

func (o *Orchestrator) stopTimers() {
	for _, s := range []*timerSlot{
		&o.liveTick, &o.fireTimer, &o.countTick, &o.expire,
		&o.resolveTk, &o.retainTick, &o.debugTick,
	} {
		s.clear()
	}
}

// do runs fn on the actor goroutine and waits for it.
func (o *Orchestrator) do(ctx context.Context, fn func()) error {
	o.mu.RLock()
	done := o.done
	o.mu.RUnlock()
	if done == nil {
		return domain.ErrNotStarted
	}

	req := request{apply: fn, done: make(chan struct{})}
	select {
	case o.reqs <- req:
	case <-done:
		return domain.ErrNotStarted
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-req.done:
		return nil
	case <-done:
		return domain.ErrNotStarted
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (o *Orchestrator) call(ctx context.Context, fn func() domain.StatusRecord) (domain.StatusRecord, error) {
	var rec domain.StatusRecord
	if err := o.do(ctx, func() { rec = fn() }); err != nil {
		return domain.StatusRecord{}, err
	}
	return rec, nil
}

// Save archives the live save of the current profile.
func (o *Orchestrator) Save(ctx context.Context) (domain.StatusRecord, error) {
	return o.call(ctx, o.manualSave)
}

// Load restores the single selected entry over the live save.
func (o *Orchestrator) Load(ctx context.Context, sel domain.Selection) (domain.StatusRecord, error) {
	return o.call(ctx, func() domain.StatusRecord { return o.load(sel) })
}

// Delete removes every selected entry.
func (o *Orchestrator) Delete(ctx context.Context, sel domain.Selection) (domain.StatusRecord, error) {
	return o.call(ctx, func() domain.StatusRecord { return o.delete(sel) })
}

// SelectionChanged records the current list selection.
func (o *Orchestrator) SelectionChanged(ctx context.Context, sel domain.Selection) (domain.StatusRecord, error) {
	return o.call(ctx, func() domain.StatusRecord { return o.selectionChanged(sel) })
}

// SetProfile switches the profile whose live save is archived and restored.
func (o *Orchestrator) SetProfile(ctx context.Context, n int) (domain.StatusRecord, error) {
	return o.call(ctx, func() domain.StatusRecord { return o.setProfile(n) })
}

// SetInterval parses and applies an autosave interval.
func (o *Orchestrator) SetInterval(ctx context.Context, text string) (domain.StatusRecord, error) {
	return o.call(ctx, func() domain.StatusRecord { return o.setInterval(text) })
}

// SetRetention changes the retention policy.
func (o *Orchestrator) SetRetention(ctx context.Context, p domain.RetentionPolicy) (domain.StatusRecord, error) {
	return o.call(ctx, func() domain.StatusRecord { return o.setRetention(p) })
}

// SetAutosave turns autosave on or off.
func (o *Orchestrator) SetAutosave(ctx context.Context, on bool) (domain.StatusRecord, error) {
	return o.call(ctx, func() domain.StatusRecord { return o.setAutosave(on) })
}

// SetAutoClean turns the hourly retention sweep on or off.
func (o *Orchestrator) SetAutoClean(ctx context.Context, on bool) (domain.StatusRecord, error) {
	return o.call(ctx, func() domain.StatusRecord { return o.setAutoClean(on) })
}

// SetDebugView opens or closes the debug view.
func (o *Orchestrator) SetDebugView(ctx context.Context, on bool) (domain.StatusRecord, error) {
	return o.call(ctx, func() domain.StatusRecord { return o.setDebugView(on) })
}

// Sweep runs one retention pass with the current policy, whether or not
// auto-clean is on.
func (o *Orchestrator) Sweep(ctx context.Context) (domain.StatusRecord, error) {
	return o.call(ctx, o.sweep)
}

// Snapshot returns the current state.
func (o *Orchestrator) Snapshot(ctx context.Context) (View, error) {
	var v View
	if err := o.do(ctx, func() { v = o.view() }); err != nil {
		return View{}, err
	}
	return v, nil
}

func (o *Orchestrator) view() View {
	now := o.clock.Now()
	return View{
		Status:     o.status.Current(),
		Liveness:   o.monitor.State(),
		Schedule:   o.sched.State(),
		Countdown:  o.sched.Countdown(now),
		Profile:    o.profile,
		Retention:  o.policy,
		AutoClean:  o.autoClean,
		DebugView:  o.debugTick.active(),
		Selection:  append(domain.Selection(nil), o.selection...),
		Entries:    append([]string(nil), o.entries...),
		DebugLines: o.debugLog.Entries(),
	}
}

// --- actor handlers ---

func (o *Orchestrator) pollLiveness() {
	now := o.clock.Now()
	switch o.monitor.Poll(o.ctx, now) {
	case domain.TransitionRising:
		o.logger.Info("process started", ports.String("process", o.monitor.Name()))
		o.debugf(now, "liveness: %s running", o.monitor.Name())
		o.sched.SetLive(true, now)
		if o.status.ResolveCategory(domain.CategoryNotRunning, now) {
			o.syncStatus()
		}
		o.syncSchedule()
	case domain.TransitionFalling:
		o.logger.Info("process exited", ports.String("process", o.monitor.Name()))
		o.debugf(now, "liveness: %s not running", o.monitor.Name())
		o.sched.SetLive(false, now)
		o.syncSchedule()
	}
}

func (o *Orchestrator) fire() {
	now := o.clock.Now()
	if !o.monitor.Running() {
		o.logger.Debug("autosave skipped", ports.Err(domain.ErrProcessNotRunning))
		o.sched.SetLive(false, now)
		o.syncSchedule()
		return
	}
	if !o.sched.Due(now) {
		// Early tick: re-arm for the remaining time.
		o.syncSchedule()
		return
	}

	o.sched.OnFire(now)
	rec := o.save()
	o.logger.Info("autosave fired",
		ports.String("status", rec.Message),
		ports.Bool("error", rec.IsError),
	)
	o.debugf(now, "autosave: %s", rec.Message)
	o.syncSchedule()
}

func (o *Orchestrator) manualSave() domain.StatusRecord {
	rec := o.save()
	if !rec.IsError && o.sched.Firing() {
		o.sched.Reset(o.clock.Now())
		o.syncSchedule()
	}
	return rec
}

// save archives the live save of the current profile and reports the outcome.
func (o *Orchestrator) save() domain.StatusRecord {
	profile := o.profile
	path := o.opts.SavePath(profile)

	raw, mtime, err := o.opts.Source.Read(path)
	if err != nil {
		return o.saveFailed(err, profile, path)
	}
	md, err := codec.ExtractMetadata(raw)
	if err != nil {
		return o.fail(domain.CategoryMalformedSave, "Error: "+err.Error(), nil)
	}

	name := codec.RenderFilename(profile, mtime, md.DeckName, md.Round)
	res, err := o.opts.Store.Add(path, name)
	if err != nil {
		return o.saveFailed(err, profile, path)
	}
	o.logger.Info("save archived",
		ports.String("entry", name),
		ports.Int("profile", profile),
		ports.String("result", res.String()),
	)
	if res == domain.AddAlreadyExists {
		return o.notice(domain.CategoryAlreadyExists, "File already exists: "+name)
	}

	o.refreshList()
	return o.succeed("Saved " + name)
}

func (o *Orchestrator) saveFailed(err error, profile int, path string) domain.StatusRecord {
	if errors.Is(err, domain.ErrSourceMissing) {
		source := o.opts.Source
		check := func() (bool, error) { return source.Exists(path) }
		return o.fail(domain.CategorySourceMissing,
			fmt.Sprintf("Error: Save file not found for Profile %d", profile), check)
	}
	o.logger.Error("save failed", ports.String("path", path), ports.Err(err))
	return o.fail(domain.CategoryOf(err), "Error: "+err.Error(), nil)
}

func (o *Orchestrator) load(sel domain.Selection) domain.StatusRecord {
	switch {
	case len(sel) == 0:
		return o.fail(domain.CategorySelection, "Error: Please select a save file to load", nil)
	case len(sel) > 1:
		return o.fail(domain.CategorySelection, "Error: Please select only one save file to load", nil)
	}

	name, _ := sel.Single()
	if !o.opts.Store.Exists(name) {
		return o.fail(domain.CategoryOf(domain.ErrNotFound), "Error: The selected file does not exist: "+name, nil)
	}

	dest := o.opts.SavePath(o.profile)
	if err := o.opts.Store.Restore(name, dest); err != nil {
		o.logger.Error("load failed", ports.String("entry", name), ports.Err(err))
		return o.fail(domain.CategoryOf(err), "Error: "+err.Error(), nil)
	}

	o.logger.Info("save restored", ports.String("entry", name), ports.String("dest", dest))
	return o.succeed("Loaded " + name)
}

func (o *Orchestrator) delete(sel domain.Selection) domain.StatusRecord {
	if len(sel) == 0 {
		return o.fail(domain.CategorySelection, "Error: No save file selected", nil)
	}

	deleted := 0
	var missing []string
	for _, name := range sel {
		err := o.opts.Store.Remove(name)
		switch {
		case err == nil:
			deleted++
		case errors.Is(err, domain.ErrNotFound):
			missing = append(missing, name)
		default:
			o.logger.Error("delete failed", ports.String("entry", name), ports.Err(err))
			o.refreshList()
			return o.fail(domain.CategoryIOFailure, "Error: Error deleting file(s): "+err.Error(), nil)
		}
	}

	o.selection = nil
	o.refreshList()
	o.logger.Info("entries deleted", ports.Int("deleted", deleted), ports.Int("missing", len(missing)))
	if len(missing) > 0 {
		return o.fail(domain.CategoryOf(domain.ErrNotFound), "Error: File not found: "+strings.Join(missing, ", "), nil)
	}
	return o.succeed(fmt.Sprintf("Deleted %d save(s)", deleted))
}

func (o *Orchestrator) selectionChanged(sel domain.Selection) domain.StatusRecord {
	o.selection = append(domain.Selection(nil), sel...)
	if len(sel) == 1 && o.status.ResolveCategory(domain.CategorySelection, o.clock.Now()) {
		o.syncStatus()
	}
	return o.status.Current()
}

func (o *Orchestrator) setProfile(n int) domain.StatusRecord {
	if !domain.ValidProfile(n) {
		return o.fail(domain.CategoryInvalidProfile,
			fmt.Sprintf("Error: Invalid profile %d. Choose 1 to %d.", n, domain.MaxProfile), nil)
	}
	o.profile = n
	// A missing-save error names the previous profile's path.
	now := o.clock.Now()
	if o.status.ResolveCategory(domain.CategoryInvalidProfile, now) ||
		o.status.ResolveCategory(domain.CategorySourceMissing, now) {
		o.syncStatus()
	}
	o.persist()
	return o.status.Current()
}

func (o *Orchestrator) setInterval(text string) domain.StatusRecord {
	now := o.clock.Now()
	minutes, err := ParseInterval(text)
	if err == nil {
		err = o.sched.SetInterval(minutes, now)
	}
	if err != nil {
		if o.sched.State().Enabled {
			o.sched.Disable()
			o.syncSchedule()
			o.persist()
		}
		return o.fail(domain.CategoryInvalidInterval,
			"Error: Invalid time interval. Please enter a positive number.", nil)
	}

	if o.status.ResolveCategory(domain.CategoryInvalidInterval, now) {
		o.syncStatus()
	}
	o.persist()
	o.syncSchedule()
	if o.sched.State().Enabled {
		return o.succeed(o.enabledMessage())
	}
	return o.status.Current()
}

func (o *Orchestrator) setAutosave(on bool) domain.StatusRecord {
	now := o.clock.Now()
	if !on {
		o.sched.Disable()
		o.syncSchedule()
		o.persist()
		o.debugf(now, "autosave disabled")
		return o.succeed("Auto-save disabled")
	}

	if err := o.sched.Enable(now); err != nil {
		return o.fail(domain.CategoryInvalidInterval,
			"Error: Invalid time interval. Please enter a positive number.", nil)
	}
	o.sched.SetLive(o.monitor.Running(), now)
	o.syncSchedule()
	o.persist()
	o.debugf(now, "autosave enabled: %s min", FormatMinutes(o.sched.State().IntervalMinutes))
	return o.succeed(o.enabledMessage())
}

func (o *Orchestrator) enabledMessage() string {
	msg := fmt.Sprintf("Auto-save enabled: every %s minute(s)", FormatMinutes(o.sched.State().IntervalMinutes))
	if !o.monitor.Running() {
		msg += fmt.Sprintf(" (paused until %s is running)", o.monitor.Name())
	}
	return msg
}

func (o *Orchestrator) setRetention(p domain.RetentionPolicy) domain.StatusRecord {
	if !p.Valid() {
		return o.fail(domain.CategoryOf(domain.ErrInvalidRetention),
			fmt.Sprintf("Error: Invalid retention policy: %d day(s)", int(p)), nil)
	}
	o.policy = p
	o.persist()
	if o.autoClean {
		return o.sweep()
	}
	return o.status.Current()
}

func (o *Orchestrator) setAutoClean(on bool) domain.StatusRecord {
	o.autoClean = on
	o.persist()
	if !on {
		o.retainTick.clear()
		return o.status.Current()
	}
	o.retainTick.set(o.clock.NewTicker(o.iv.Retention))
	return o.sweep()
}

func (o *Orchestrator) setDebugView(on bool) domain.StatusRecord {
	if !on {
		o.debugTick.clear()
		return o.status.Current()
	}
	if !o.debugTick.active() {
		o.debugTick.set(o.clock.NewTicker(o.iv.Debug))
		for _, line := range o.debugLog.Entries() {
			o.sink.OnDebug(line)
		}
	}
	return o.status.Current()
}

func (o *Orchestrator) sweep() domain.StatusRecord {
	now := o.clock.Now()
	res := o.retention.Sweep(o.policy, now)
	o.debugf(now, "retention: %d deleted under %s", len(res.Deleted), o.policy)
	if len(res.Deleted) == 0 {
		return o.status.Current()
	}
	o.refreshList()
	return o.succeed(fmt.Sprintf("Cleaned %d old save(s)", len(res.Deleted)))
}

func (o *Orchestrator) debugSnapshot() {
	now := o.clock.Now()
	st := o.sched.State()
	cur := o.status.Current()
	line := o.debugLog.Appendf(now,
		"running=%t autosave=%t firing=%t next=%s status=%q category=%s entries=%d",
		o.monitor.Running(), st.Enabled, o.sched.Firing(), o.sched.Countdown(now),
		cur.Message, cur.Category, len(o.entries))
	o.sink.OnDebug(line)
}

// debugf records a line in the debug log and pushes it while the view is open.
func (o *Orchestrator) debugf(now time.Time, format string, args ...any) {
	line := o.debugLog.Appendf(now, format, args...)
	if o.debugTick.active() {
		o.sink.OnDebug(line)
	}
}

func (o *Orchestrator) refreshList() {
	names, err := o.opts.Store.List()
	if err != nil {
		o.logger.Warn("list archive failed", ports.Err(err))
		return
	}
	o.entries = names
	o.sink.OnArchiveChanged(append([]string(nil), names...))
}

func (o *Orchestrator) succeed(msg string) domain.StatusRecord {
	return o.notice(domain.CategoryNone, msg)
}

func (o *Orchestrator) notice(cat domain.Category, msg string) domain.StatusRecord {
	rec := o.status.ReportNotice(msg, cat, o.clock.Now())
	o.syncStatus()
	return rec
}

func (o *Orchestrator) fail(cat domain.Category, msg string, check domain.ResolutionCheck) domain.StatusRecord {
	rec, attention := o.status.ReportError(msg, cat, check, o.clock.Now())
	o.logger.Warn("status error", ports.String("message", msg), ports.String("category", cat.String()))
	o.syncStatus()
	if attention {
		o.sink.OnAttention(msg)
	}
	return rec
}

// syncStatus re-arms the expiry timer and resolution poll for the current
// record and publishes it.
func (o *Orchestrator) syncStatus() {
	now := o.clock.Now()
	if at, ok := o.status.ExpireAt(); ok {
		o.expire.set(o.clock.NewTimer(at.Sub(now)))
	} else {
		o.expire.clear()
	}
	if o.status.Pending() {
		if !o.resolveTk.active() {
			o.resolveTk.set(o.clock.NewTicker(o.iv.Resolve))
		}
	} else {
		o.resolveTk.clear()
	}
	o.sink.OnStatus(o.status.Current())
}

// syncSchedule re-arms the fire timer and countdown ticker for the current
// schedule and publishes the countdown.
func (o *Orchestrator) syncSchedule() {
	now := o.clock.Now()
	if !o.sched.Firing() {
		o.fireTimer.clear()
		o.countTick.clear()
		o.sink.OnCountdown("")
		return
	}
	o.fireTimer.set(o.clock.NewTimer(o.sched.Until(now)))
	if !o.countTick.active() {
		o.countTick.set(o.clock.NewTicker(o.iv.Countdown))
	}
	o.sink.OnCountdown(o.sched.Countdown(now))
}

func (o *Orchestrator) persist() {
	if o.opts.Prefs == nil {
		return
	}
	st := o.sched.State()
	prefs := domain.Preferences{
		Profile:         o.profile,
		IntervalMinutes: st.IntervalMinutes,
		RetentionDays:   int(o.policy),
		Autosave:        st.Enabled,
		AutoClean:       o.autoClean,
	}
	if err := o.opts.Prefs.Save(o.ctx, prefs); err != nil {
		o.logger.Warn("save preferences failed", ports.Err(err))
	}
}
