package repository

// RedisCommand is one command queued on a pipeline
type RedisCommand struct {
	Name string
	Args []interface{}
}

// RedisResult is the reply to the RedisCommand at the same index
type RedisResult struct {
	Err   error
	Value interface{}
}
