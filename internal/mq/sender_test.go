package mq

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTopic = "test-decoded-message"

// fakeProducer 模拟 librdkafka 的异步 ack
type fakeProducer struct {
	mu         sync.Mutex
	produced   []*kafka.Message
	produceErr error
	ackErr     error
	ackDelay   time.Duration
	noAck      bool
}

func (p *fakeProducer) Produce(msg *kafka.Message, deliveryChan chan kafka.Event) error {
	if p.produceErr != nil {
		return p.produceErr
	}
	p.mu.Lock()
	p.produced = append(p.produced, msg)
	p.mu.Unlock()

	if p.noAck {
		return nil
	}
	go func() {
		time.Sleep(p.ackDelay)
		deliveryChan <- &kafka.Message{TopicPartition: kafka.TopicPartition{
			Topic:     msg.TopicPartition.Topic,
			Partition: msg.TopicPartition.Partition,
			Error:     p.ackErr,
		}}
	}()
	return nil
}

func testJobs(n int) []*KafkaJob {
	jobs := make([]*KafkaJob, n)
	for i := range jobs {
		jobs[i] = &KafkaJob{
			Topic:     testTopic,
			Partition: int32(i),
			Key:       []byte{byte(i)},
			Value:     []byte("test message " + string(rune('0'+i))),
		}
	}
	return jobs
}

func TestSendKafkaJobs(t *testing.T) {
	producer := &fakeProducer{ackDelay: time.Millisecond}
	jobs := testJobs(10)

	ok, failed := SendKafkaJobs(context.Background(), producer, jobs, time.Second)
	assert.Len(t, ok, 10, "应该成功发送 10 条消息")
	assert.Empty(t, failed, "不应该有失败的消息")

	require.Len(t, producer.produced, 10)
	for _, msg := range producer.produced {
		assert.Equal(t, testTopic, *msg.TopicPartition.Topic)
		assert.Equal(t, []byte{byte(msg.TopicPartition.Partition)}, msg.Key)
	}
}

func TestSendKafkaJobs_Empty(t *testing.T) {
	ok, failed := SendKafkaJobs(context.Background(), &fakeProducer{}, nil, time.Second)
	assert.Empty(t, ok, "空消息列表应该返回空成功列表")
	assert.Empty(t, failed, "空消息列表应该返回空失败列表")
}

func TestSendKafkaJobs_AnyPartition(t *testing.T) {
	producer := &fakeProducer{}
	ok, _ := SendKafkaJobs(context.Background(), producer, []*KafkaJob{{Topic: testTopic, Partition: -1}}, time.Second)
	require.Len(t, ok, 1)
	assert.Equal(t, kafka.PartitionAny, producer.produced[0].TopicPartition.Partition)
}

func TestSendKafkaJobs_Failures(t *testing.T) {
	boom := errors.New("boom")

	t.Run("produce error", func(t *testing.T) {
		ok, failed := SendKafkaJobs(context.Background(), &fakeProducer{produceErr: boom}, testJobs(2), time.Second)
		assert.Empty(t, ok)
		require.Len(t, failed, 2)
		assert.ErrorIs(t, failed[0].Err, boom)
	})

	t.Run("ack error", func(t *testing.T) {
		ackErr := kafka.NewError(kafka.ErrMsgTimedOut, "timed out", false)
		ok, failed := SendKafkaJobs(context.Background(), &fakeProducer{ackErr: ackErr}, testJobs(1), time.Second)
		assert.Empty(t, ok)
		require.Len(t, failed, 1)
		assert.Error(t, failed[0].Err)
	})

	t.Run("timeout", func(t *testing.T) {
		ok, failed := SendKafkaJobs(context.Background(), &fakeProducer{noAck: true}, testJobs(1), 10*time.Millisecond)
		assert.Empty(t, ok, "由于超时，不应该有成功的消息")
		require.Len(t, failed, 1)
		assert.ErrorIs(t, failed[0].Err, ErrDeliveryTimeout)
	})

	t.Run("ctx cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		ok, failed := SendKafkaJobs(ctx, &fakeProducer{noAck: true}, testJobs(3), time.Second)
		assert.Empty(t, ok)
		require.Len(t, failed, 3)
		assert.ErrorIs(t, failed[0].Err, context.Canceled)
	})
}

// 需要本地 Kafka：KAFKA_BROKERS=127.0.0.1:9092 go test ./internal/mq/
func TestSendKafkaJobs_RealKafka(t *testing.T) {
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		t.Skip("KAFKA_BROKERS not set")
	}

	opt := KafkaProducerOption{
		Brokers: brokers,
		Topics:  []TopicOption{{Topic: testTopic, Partitions: 1}},
	}
	producer, err := NewKafkaProducer(opt)
	require.NoError(t, err)
	defer producer.Close()

	consumer, err := kafka.NewConsumer(&kafka.ConfigMap{
		"bootstrap.servers": brokers,
		"group.id":          "test-group-" + time.Now().Format("20060102150405"), // 动态生成消费者组
		"auto.offset.reset": "earliest",
	})
	require.NoError(t, err)
	defer consumer.Close()
	require.NoError(t, consumer.Subscribe(testTopic, nil))

	jobs := []*KafkaJob{
		{Topic: testTopic, Value: []byte("test message 1")},
		{Topic: testTopic, Value: []byte("test message 2")},
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ok, failed := SendKafkaJobs(ctx, producer, jobs, 2*time.Second)
	assert.Len(t, ok, 2)
	assert.Empty(t, failed)
	producer.Flush(1000)

	received := make(map[string]bool)
	for i := 0; i < 2; i++ {
		msg, err := consumer.ReadMessage(5 * time.Second)
		require.NoError(t, err)
		received[string(msg.Value)] = true
	}
	assert.True(t, received["test message 1"], "未收到第一条消息")
	assert.True(t, received["test message 2"], "未收到第二条消息")
}

func TestProducerConfig_Defaults(t *testing.T) {
	cfg := producerConfig(KafkaProducerOption{Brokers: "b:9092", BatchSize: 0, LingerMs: -1})
	v, err := cfg.Get("batch.size", nil)
	require.NoError(t, err)
	assert.Equal(t, defaultBatchSize, v)
	v, err = cfg.Get("linger.ms", nil)
	require.NoError(t, err)
	assert.Equal(t, defaultLingerMs, v)
	v, err = cfg.Get("bootstrap.servers", nil)
	require.NoError(t, err)
	assert.Equal(t, "b:9092", v)
}
