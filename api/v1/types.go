package v1

// PoolStatus defines the pool state returned by GET /pool.
type PoolStatus struct {
	Id                     string `json:"id"`
	Phase                  string `json:"phase"`
	PoolSize               int    `json:"poolSize"`
	ActiveCount            int    `json:"activeCount"`
	LargestPoolSize        int    `json:"largestPoolSize"`
	CorePoolSize           int    `json:"corePoolSize"`
	MaximumPoolSize        int    `json:"maximumPoolSize"`
	QueuedTasks            int    `json:"queuedTasks"`
	TaskCount              uint64 `json:"taskCount"`
	CompletedTaskCount     uint64 `json:"completedTaskCount"`
	RejectedTaskCount      uint64 `json:"rejectedTaskCount"`
	KeepAlive              string `json:"keepAlive"`
	AllowCoreThreadTimeOut bool   `json:"allowCoreThreadTimeOut"`
}

// PoolUpdate defines the body of PATCH /pool.
type PoolUpdate struct {
	CorePoolSize           *int    `json:"corePoolSize,omitempty"`
	MaximumPoolSize        *int    `json:"maximumPoolSize,omitempty"`
	KeepAlive              *string `json:"keepAlive,omitempty"`
	AllowCoreThreadTimeOut *bool   `json:"allowCoreThreadTimeOut,omitempty"`
}

// ShutdownParams defines the query parameters of POST /pool/shutdown.
type ShutdownParams struct {
	Now *bool `form:"now"`
}

// ShutdownResult defines the body returned by POST /pool/shutdown.
type ShutdownResult struct {
	Phase   string `json:"phase"`
	Drained int    `json:"drained"`
}

// LoadRequest defines the body of POST /tasks.
type LoadRequest struct {
	Count     int     `json:"count" binding:"required,min=1,max=100000"`
	Duration  *string `json:"duration,omitempty"`
	FailEvery *int    `json:"failEvery,omitempty" binding:"omitempty,min=0"`
}

// LoadResult defines the body returned by POST /tasks.
type LoadResult struct {
	Batch    string `json:"batch"`
	Accepted int    `json:"accepted"`
	Rejected int    `json:"rejected"`
}

// BatchStatus defines the body returned by GET /tasks/{batch}.
type BatchStatus struct {
	Batch     string `json:"batch"`
	Submitted string `json:"submitted"`
	Done      bool   `json:"done"`
	Pending   int    `json:"pending"`
	Succeeded int    `json:"succeeded"`
	Failed    int    `json:"failed"`
	Cancelled int    `json:"cancelled"`
}

// Error defines the body of every error response.
type Error struct {
	Error string `json:"error"`
}
