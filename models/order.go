package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"stylehive/database"
)

// Order lifecycle. Transitions come only from admin processing or a user
// cancel / return action.
const (
	OrderPlaced          = "placed"
	OrderPaymentPending  = "payment_pending"
	OrderProcessing      = "processing"
	OrderShipped         = "shipped"
	OrderDelivered       = "delivered"
	OrderCancelled       = "cancelled"
	OrderReturnRequested = "return_requested"
	OrderReturned        = "returned"
)

// Payment status values.
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"
)

// Payment methods.
const (
	MethodCOD      = "cod"
	MethodWallet   = "wallet"
	MethodRazorpay = "razorpay"
)

var orderTransitions = map[string][]string{
	OrderPaymentPending:  {OrderPlaced, OrderCancelled},
	OrderPlaced:          {OrderProcessing, OrderCancelled},
	OrderProcessing:      {OrderShipped, OrderCancelled},
	OrderShipped:         {OrderDelivered},
	OrderDelivered:       {OrderReturnRequested},
	OrderReturnRequested: {OrderReturned, OrderDelivered},
}

// CanTransition reports whether an order may move from one status to
// another.
func CanTransition(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type OrderItem struct {
	ProductID primitive.ObjectID `json:"product_id" bson:"product_id"`
	VariantID primitive.ObjectID `json:"variant_id" bson:"variant_id"`
	Name      string             `json:"name" bson:"name"`
	Color     string             `json:"color" bson:"color"`
	Image     string             `json:"image" bson:"image"`
	Price     float64            `json:"price" bson:"price"`
	Quantity  int                `json:"quantity" bson:"quantity"`
	Total     float64            `json:"total" bson:"total"`
}

// Order is immutable once placed, apart from status, payment and return
// fields. The shipping address is a snapshot, not a reference.
type Order struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID          primitive.ObjectID `json:"user_id" bson:"user_id"`
	Items           []OrderItem        `json:"items" bson:"items"`
	ShippingAddress Address            `json:"shipping_address" bson:"shipping_address"`
	Subtotal        float64            `json:"subtotal" bson:"subtotal"`
	Discount        float64            `json:"discount" bson:"discount"`
	Tax             float64            `json:"tax" bson:"tax"`
	Shipping        float64            `json:"shipping" bson:"shipping"`
	FinalAmount     float64            `json:"final_amount" bson:"final_amount"`
	PaymentMethod   string             `json:"payment_method" bson:"payment_method"`
	PaymentStatus   string             `json:"payment_status" bson:"payment_status"`
	RazorpayOrderID string             `json:"razorpay_order_id,omitempty" bson:"razorpay_order_id,omitempty"`
	PaymentID       string             `json:"payment_id,omitempty" bson:"payment_id,omitempty"`
	Status          string             `json:"status" bson:"status"`
	ReturnReason    string             `json:"return_reason,omitempty" bson:"return_reason,omitempty"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at" bson:"updated_at"`
	DeliveredAt     time.Time          `json:"delivered_at,omitempty" bson:"delivered_at,omitempty"`
}

// NewOrder builds an order from resolved cart lines. The final amount is
// always subtotal - discount + tax + shipping, never caller-supplied.
func NewOrder(userID primitive.ObjectID, address Address, lines []CartLine, discount, tax, shipping float64, paymentMethod string) Order {
	items := make([]OrderItem, 0, len(lines))
	var subtotal float64
	for _, line := range lines {
		items = append(items, OrderItem{
			ProductID: line.ProductID,
			VariantID: line.VariantID,
			Name:      line.Name,
			Color:     line.Color,
			Image:     line.Image,
			Price:     line.SalePrice,
			Quantity:  line.Quantity,
			Total:     line.Total,
		})
		subtotal += line.Total
	}

	now := time.Now()
	return Order{
		UserID:          userID,
		Items:           items,
		ShippingAddress: address,
		Subtotal:        subtotal,
		Discount:        discount,
		Tax:             tax,
		Shipping:        shipping,
		FinalAmount:     subtotal - discount + tax + shipping,
		PaymentMethod:   paymentMethod,
		PaymentStatus:   PaymentPending,
		Status:          OrderPlaced,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func CreateOrder(order Order) (Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	order.ID = primitive.NewObjectID()
	_, err := db.OrderCollection.InsertOne(ctx, order)
	return order, err
}

func GetOrdersByUser(userID primitive.ObjectID) ([]Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := db.OrderCollection.Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func GetOrderByID(orderID primitive.ObjectID) (Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var order Order
	err := db.OrderCollection.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
	return order, err
}

// OrderQuery filters the admin order listing.
type OrderQuery struct {
	Page   int
	Limit  int
	Status string
}

func ListOrders(query OrderQuery) ([]Order, int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if query.Status != "" {
		filter["status"] = query.Status
	}

	total, err := db.OrderCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 || limit > 100 {
		limit = 10
	}

	findOptions := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := db.OrderCollection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var orders []Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// TransitionOrder moves an order along the lifecycle, rejecting jumps the
// lifecycle does not allow.
func TransitionOrder(orderID primitive.ObjectID, to string) (Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var order Order
	err := db.OrderCollection.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
	if err != nil {
		return Order{}, err
	}
	if !CanTransition(order.Status, to) {
		return Order{}, ErrInvalidTransition
	}

	set := bson.M{"status": to, "updated_at": time.Now()}
	if to == OrderDelivered {
		set["delivered_at"] = time.Now()
		if order.PaymentMethod == MethodCOD {
			set["payment_status"] = PaymentPaid
		}
	}

	_, err = db.OrderCollection.UpdateOne(ctx, bson.M{"_id": orderID}, bson.M{"$set": set})
	if err != nil {
		return Order{}, err
	}
	order.Status = to
	return order, nil
}

func SetOrderPayment(orderID primitive.ObjectID, paymentStatus, paymentID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	set := bson.M{"payment_status": paymentStatus, "updated_at": time.Now()}
	if paymentID != "" {
		set["payment_id"] = paymentID
	}

	result, err := db.OrderCollection.UpdateOne(ctx, bson.M{"_id": orderID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// MarkOrderPaid records a verified gateway payment and releases the order
// into the lifecycle. The filter only matches orders still awaiting
// payment, so a replayed verification cannot touch an order that has
// moved on.
func MarkOrderPaid(orderID primitive.ObjectID, paymentID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := db.OrderCollection.UpdateOne(ctx,
		bson.M{"_id": orderID, "status": OrderPaymentPending},
		bson.M{"$set": bson.M{
			"payment_status": PaymentPaid,
			"payment_id":     paymentID,
			"status":         OrderPlaced,
			"updated_at":     time.Now(),
		}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrInvalidTransition
	}
	return nil
}

func SetReturnReason(orderID primitive.ObjectID, reason string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := db.OrderCollection.UpdateOne(ctx,
		bson.M{"_id": orderID},
		bson.M{"$set": bson.M{"return_reason": reason, "updated_at": time.Now()}},
	)
	return err
}
