package config

type WorkerKeyStruct struct {
	NotificationsQueue string
}

var WorkerKey = &WorkerKeyStruct{
	NotificationsQueue: "notifications_queue",
}
