// Package fsd_client 实现 FSD 协议客户端
//
// 所有协议状态只在一个工作协程中读写, socket 读取 定时器 以及外部调用都通过
// post 把任务投递到该协程. 身份信息由读写锁保护, 只允许在断开状态下修改.
package fsd_client

import (
	"context"
	"errors"
	"net"
	"regexp"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bassosimone/runtimex"
	"github.com/half-nothing/fsd-client/internal/fsd_client/atis"
	"github.com/half-nothing/fsd-client/internal/fsd_client/auth"
	"github.com/half-nothing/fsd-client/internal/fsd_client/debounce"
	"github.com/half-nothing/fsd-client/internal/fsd_client/offset"
	"github.com/half-nothing/fsd-client/internal/fsd_client/pacer"
	"github.com/half-nothing/fsd-client/internal/fsd_client/packet"
	"github.com/half-nothing/fsd-client/internal/interfaces/config"
	"github.com/half-nothing/fsd-client/internal/interfaces/fsd"
	"github.com/half-nothing/fsd-client/internal/interfaces/log"
	"github.com/half-nothing/fsd-client/internal/interfaces/operation"
	"github.com/half-nothing/fsd-client/internal/utils"
)

const (
	taskQueueSize       = 1024
	visualPeriodicEvery = 25
	maxLinesPerRead     = 75
	readYield           = 10 * time.Millisecond
	watchdogFactor      = 1.25
)

// Dialer 建立 TCP 连接, net.Dialer 满足该接口
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// TokenFetcherInterface 向认证服务换取登录令牌
type TokenFetcherInterface interface {
	Fetch(ctx context.Context, cid, password string) (string, error)
}

type Options struct {
	Logger log.LoggerInterface
	Config *config.Config
	// OwnAircraft 为 nil 时使用由配置生成的静态本机
	OwnAircraft fsd.OwnAircraftProviderInterface
	// RemoteAircraft 为 nil 时使用内置的按距离判断的登记表
	RemoteAircraft fsd.RemoteAircraftProviderInterface
	// Authenticator 为 nil 时使用服务器配置中的密钥
	Authenticator fsd.AuthenticatorInterface
	TokenFetcher  TokenFetcherInterface
	Dialer        Dialer
	RawSinks      []fsd.RawMessageSinkInterface
	Statistics    fsd.StatisticsStoreInterface
	History       operation.HistoryOperationInterface
	TimeNow       func() time.Time
}

// identity 连接前设置, 连接期间只读
type identity struct {
	callsign     string
	realName     string
	homebase     string
	cid          string
	password     string
	loginMode    fsd.LoginMode
	pilotRating  fsd.PilotRating
	atcRating    fsd.AtcRating
	simType      fsd.SimType
	clientName   string
	clientId     int
	versionMajor int
	versionMinor int
	capabilities fsd.Capability
	modelString  string
	livery       string
	server       config.ServerConfig
}

type Client struct {
	logger  log.LoggerInterface
	config  *config.Config
	timeNow func() time.Time

	identityMu sync.RWMutex
	identity   identity

	status   atomic.Int32
	shutdown atomic.Bool

	subscribersMu sync.Mutex
	subscribers   []fsd.EventHandler

	tasks chan func()
	done  chan struct{}

	ownAircraft    fsd.OwnAircraftProviderInterface
	remoteAircraft fsd.RemoteAircraftProviderInterface
	registry       *AircraftRegistry
	authenticator  fsd.AuthenticatorInterface
	tokenFetcher   TokenFetcherInterface
	dialer         Dialer
	rawSinks       []fsd.RawMessageSinkInterface
	statisticsDb   fsd.StatisticsStoreInterface
	historyDb      operation.HistoryOperationInterface
	statistics     *Statistics
	sessionIdValue atomic.Value

	// 以下字段只在工作协程中访问
	stopping             bool
	session              identity
	sessionId            string
	generation           uint64
	connId               uint64
	conn                 net.Conn
	codec                *packet.TextCodec
	dialCancel           context.CancelFunc
	watchdog             *time.Timer
	handshake            *auth.Handshake
	history              *operation.History
	rawLog               *rawLogWriter
	loginSince           time.Time
	filterPassword       bool
	rehosting            bool
	rehostCancel         context.CancelFunc
	serverWantsVisual    bool
	stoppedSendingVisual bool
	visualPeriodicDue    bool
	visualTrigger        *utils.OverflowTrigger
	interimReceivers     map[string]struct{}
	sentAircraftConfig   *fsd.AircraftParts
	tokenBucket          *utils.TokenBucket
	pacer                *pacer.Pacer
	offsets              *offset.Estimator
	consolidator         *atis.Consolidator
	atisMap              *atis.Map
	textBuffer           *debounce.Buffer[*fsd.TextMessageItem]
	passwordMask         *regexp.Regexp

	positionTicker *time.Ticker
	interimTicker  *time.Ticker
	visualTicker   *time.Ticker
	configTicker   *time.Ticker
	pacerTicker    *time.Ticker
}

// NewClient 创建客户端并启动工作协程, 使用完毕后需要调用 Shutdown
func NewClient(options *Options) (*Client, error) {
	if options == nil || options.Config == nil || options.Logger == nil {
		return nil, errors.New("logger and config are required")
	}
	cfg := options.Config
	timeNow := options.TimeNow
	if timeNow == nil {
		timeNow = time.Now
	}

	client := &Client{
		logger:           options.Logger,
		config:           cfg,
		timeNow:          timeNow,
		tasks:            make(chan func(), taskQueueSize),
		done:             make(chan struct{}),
		ownAircraft:      options.OwnAircraft,
		remoteAircraft:   options.RemoteAircraft,
		authenticator:    options.Authenticator,
		tokenFetcher:     options.TokenFetcher,
		dialer:           options.Dialer,
		rawSinks:         options.RawSinks,
		statisticsDb:     options.Statistics,
		historyDb:        options.History,
		interimReceivers: make(map[string]struct{}),
		passwordMask:     regexp.MustCompile(`^(#AP\w+:SERVER:\d+:)[^:]+(:\d+:\d+:\d+:.+)$`),
	}
	client.identity = identityFromConfig(cfg)
	client.statistics = NewStatistics(timeNow)
	client.sessionIdValue.Store("")

	if client.ownAircraft == nil {
		client.ownAircraft = NewStaticOwnAircraft(&fsd.OwnAircraft{
			Callsign:     cfg.Client.Callsign,
			AircraftIcao: cfg.Client.AircraftIcao,
			AirlineIcao:  cfg.Client.AirlineIcao,
			Livery:       cfg.Client.Livery,
			ModelString:  cfg.Client.ModelString,
		})
	}
	client.registry = NewAircraftRegistry(client.ownAircraft, cfg.Server.NetworkRangeNm)
	if client.remoteAircraft == nil {
		client.remoteAircraft = client.registry
	}
	if client.tokenFetcher == nil {
		client.tokenFetcher = auth.NewTokenFetcher(cfg.Server.AuthTokenUrl)
	}
	if client.dialer == nil {
		client.dialer = &net.Dialer{Timeout: cfg.Timing.PendingConnectionDuration}
	}

	client.tokenBucket = utils.NewTokenBucket(cfg.TokenBucket.Capacity, cfg.TokenBucket.IntervalDuration, cfg.TokenBucket.TokensPerInterval)
	client.pacer = pacer.NewPacer(client.logger, cfg.Pacer, client.writeLine)
	client.offsets = offset.NewEstimator(cfg.Timing.AdditionalOffsetDuration)
	client.offsets.TimeNow = timeNow
	client.consolidator = atis.NewConsolidator(cfg.Atis.PendingTimeoutDuration, cfg.Atis.LogoffRegexp)
	client.consolidator.TimeNow = timeNow
	client.atisMap = atis.NewMap()
	client.textBuffer = debounce.NewBuffer(cfg.Timing.DebounceQuietDuration, cfg.Timing.DebounceMaxWaitDuration,
		client.emitTextMessages, func(task func()) { client.post(task) })
	client.visualTrigger = utils.NewOverflowTrigger(visualPeriodicEvery, nil)
	client.visualPeriodicDue = true

	rawLog, err := openRawLog(cfg.RawLog, timeNow())
	if err != nil {
		client.logger.ErrorF("Failed to open raw message log, %v", err)
	}
	client.rawLog = rawLog

	go client.run()
	return client, nil
}

func identityFromConfig(cfg *config.Config) identity {
	return identity{
		callsign:     cfg.Client.Callsign,
		realName:     cfg.Client.RealName,
		homebase:     cfg.Client.Homebase,
		cid:          cfg.Client.Cid,
		password:     cfg.Client.Password,
		loginMode:    cfg.Client.Mode,
		pilotRating:  fsd.PilotRating(cfg.Client.PilotRating),
		atcRating:    fsd.AtcRating(cfg.Client.AtcRating),
		simType:      fsd.SimType(cfg.Client.SimType),
		clientName:   cfg.Client.ClientName,
		clientId:     cfg.Client.ClientId,
		versionMajor: cfg.Client.VersionMajor,
		versionMinor: cfg.Client.VersionMinor,
		capabilities: cfg.Client.CapabilityFlags,
		modelString:  cfg.Client.ModelString,
		livery:       cfg.Client.Livery,
		server:       *cfg.Server,
	}
}

func tickerC(ticker *time.Ticker) <-chan time.Time {
	if ticker == nil {
		return nil
	}
	return ticker.C
}

func (client *Client) run() {
	defer close(client.done)
	for !client.stopping {
		select {
		case task := <-client.tasks:
			task()
		case <-tickerC(client.positionTicker):
			client.tick(client.sendPositionUpdates)
		case <-tickerC(client.interimTicker):
			client.tick(client.sendInterimPilotDataUpdates)
		case <-tickerC(client.visualTicker):
			client.tick(func() { client.sendVisualPilotDataUpdate(false) })
		case <-tickerC(client.configTicker):
			client.tick(client.sendIncrementalAircraftConfig)
		case <-tickerC(client.pacerTicker):
			client.tick(func() { client.pacer.Tick() })
		}
	}
}

// tick 关闭流程开始后忽略定时器
func (client *Client) tick(action func()) {
	if client.shutdown.Load() {
		return
	}
	action()
}

// post 把任务投递到工作协程, 客户端关闭后返回 false
func (client *Client) post(task func()) bool {
	select {
	case <-client.done:
		return false
	default:
	}
	select {
	case client.tasks <- task:
		return true
	case <-client.done:
		return false
	}
}

// call 投递任务并等待执行完毕, 不能在工作协程中调用
func (client *Client) call(task func()) error {
	finished := make(chan struct{})
	if !client.post(func() {
		defer close(finished)
		task()
	}) {
		return fsd.ErrClientShutdown
	}
	select {
	case <-finished:
		return nil
	case <-client.done:
		return fsd.ErrClientShutdown
	}
}

// Subscribe 注册事件处理函数, 处理函数在工作协程中同步调用
func (client *Client) Subscribe(handler fsd.EventHandler) {
	client.subscribersMu.Lock()
	defer client.subscribersMu.Unlock()
	client.subscribers = append(client.subscribers, handler)
}

func (client *Client) emit(event fsd.Event) {
	client.subscribersMu.Lock()
	subscribers := append([]fsd.EventHandler(nil), client.subscribers...)
	client.subscribersMu.Unlock()
	for _, handler := range subscribers {
		handler(event)
	}
}

func (client *Client) Status() fsd.ConnectionStatus {
	return fsd.ConnectionStatus(client.status.Load())
}

func (client *Client) IsConnected() bool {
	return client.Status().IsConnected()
}

// SessionId 当前或最近一次会话的 id
func (client *Client) SessionId() string {
	return client.sessionIdValue.Load().(string)
}

func (client *Client) Statistics() *Statistics {
	return client.statistics
}

func (client *Client) Registry() *AircraftRegistry {
	return client.registry
}

func (client *Client) updateConnectionStatus(newStatus fsd.ConnectionStatus) {
	oldStatus := client.Status()
	if oldStatus == newStatus {
		return
	}

	switch newStatus {
	case fsd.Connected:
		client.startHistory()
	case fsd.Disconnected:
		client.stopTimers()
		client.clearState()
		client.saveNetworkStatistics()
		client.endHistory()
	}

	client.status.Store(int32(newStatus))
	client.logger.InfoF("[%s](%s) connection status %s -> %s", client.sessionId, client.session.callsign, oldStatus, newStatus)
	client.emit(&fsd.ConnectionStatusChanged{Old: oldStatus, New: newStatus})
}

// clearState 重置会话相关的全部状态
func (client *Client) clearState() {
	client.rehosting = false
	if client.rehostCancel != nil {
		client.rehostCancel()
		client.rehostCancel = nil
	}
	client.stoppedSendingVisual = false
	client.serverWantsVisual = false
	client.visualPeriodicDue = true
	client.visualTrigger.Reset()
	client.textBuffer.Clear()
	client.consolidator.Clear()
	client.atisMap.Clear()
	client.offsets.Clear()
	client.registry.Clear()
	client.pacer.Clear()
	client.sentAircraftConfig = nil
	client.tokenBucket.Reset()
	client.loginSince = time.Time{}
}

// clearCallsignState 移除单个呼号的缓存
func (client *Client) clearCallsignState(callsign string) {
	client.consolidator.Remove(callsign)
	client.atisMap.Remove(callsign)
	client.offsets.Remove(callsign)
	delete(client.interimReceivers, callsign)
}

func (client *Client) assert(condition bool) {
	if client.config.Client.DebugAsserts {
		runtimex.Assert(condition)
	}
}

// Shutdown 断开连接并停止工作协程
func (client *Client) Shutdown(ctx context.Context) error {
	if !client.shutdown.CompareAndSwap(false, true) {
		return nil
	}
	client.post(func() {
		client.disconnect()
		client.stopping = true
	})
	select {
	case <-client.done:
	case <-ctx.Done():
		return ctx.Err()
	}
	client.textBuffer.Stop()
	if client.rawLog != nil {
		client.rawLog.Close()
	}
	return nil
}
